package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "hr-scanner"

// Config is the file-backed configuration for a scan run.
type Config struct {
	Gmail  *GmailConfig  `mapstructure:"gmail"`
	Source *SourceConfig `mapstructure:"source"`
	Output *OutputConfig `mapstructure:"output"`
}

// GmailConfig configures the mailbox collaborator.
type GmailConfig struct {
	CredentialsFile string `mapstructure:"credentials-file"`
	TokenFile       string `mapstructure:"token-file"`
	Query           string `mapstructure:"query"`
	KeepUnread      bool   `mapstructure:"keep-unread"`
}

// SourceConfig points at a local resume directory for offline runs.
type SourceConfig struct {
	Dir string `mapstructure:"dir"`
}

// OutputConfig configures the Excel report.
type OutputConfig struct {
	File   string `mapstructure:"file"`
	Append bool   `mapstructure:"append"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hr-scanner scans an HR inbox for job applications and builds a scored candidate sheet",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gmail.credentials-file", "HR_SCANNER_CREDENTIALS_FILE"); err != nil {
		log.Fatalf("binding HR_SCANNER_CREDENTIALS_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("gmail.token-file", "HR_SCANNER_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HR_SCANNER_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hr-scanner.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A missing default config is fine (offline runs need none), an
	// unparseable one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	return config, nil
}
