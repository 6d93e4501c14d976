package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hr-scanner version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
