package main

import (
	"os"

	"github.com/fmuoria/hr-inbox-scanner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
