package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fmuoria/hr-inbox-scanner/internal/agent"
	"github.com/fmuoria/hr-inbox-scanner/internal/export"
	"github.com/fmuoria/hr-inbox-scanner/internal/ingestion"
	"github.com/fmuoria/hr-inbox-scanner/internal/logger"
	"github.com/fmuoria/hr-inbox-scanner/internal/models"
	"github.com/fmuoria/hr-inbox-scanner/internal/scoring"
)

const (
	defaultQuery  = "is:unread has:attachment"
	defaultOutput = "candidates.xlsx"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the inbox (or a resume directory) and write the candidate sheet",
	Run: func(cmd *cobra.Command, _ []string) {
		scan(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("dir", "", "scan a local resume directory instead of the mailbox")
	scanCmd.Flags().StringP("output", "o", "", "output Excel file (default candidates.xlsx)")
	scanCmd.Flags().BoolP("append", "a", false, "append to an existing sheet, deduplicating by email")
	scanCmd.Flags().Bool("keep-unread", false, "do not mark processed mail as read")

	viper.BindPFlag("source.dir", scanCmd.Flags().Lookup("dir"))
	viper.BindPFlag("output.file", scanCmd.Flags().Lookup("output"))
	viper.BindPFlag("output.append", scanCmd.Flags().Lookup("append"))
	viper.BindPFlag("gmail.keep-unread", scanCmd.Flags().Lookup("keep-unread"))
}

// scan is the main command for the cli.
func scan(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	logger.Info("starting the hr-scanner", zap.String("version", version))

	output := defaultOutput
	if config.Output != nil && config.Output.File != "" {
		output = config.Output.File
	}
	if !strings.HasSuffix(strings.ToLower(output), ".xlsx") {
		output += ".xlsx"
	}

	var (
		msgs  []models.RawMessage
		gmail *ingestion.GmailClient
	)

	if config.Source != nil && config.Source.Dir != "" {
		msgs, err = ingestion.NewFileHandler(config.Source.Dir).LoadMessages()
		if err != nil {
			logger.Fatal("loading resumes from directory", zap.Error(err))
		}
		logger.Info("loaded resumes from directory",
			zap.String("dir", config.Source.Dir),
			zap.Int("files", len(msgs)))
	} else {
		if config.Gmail == nil || config.Gmail.CredentialsFile == "" {
			logger.Fatal("gmail credentials are required to scan the mailbox",
				zap.String("hint", "set gmail.credentials-file in the config, HR_SCANNER_CREDENTIALS_FILE, or use --dir for offline runs"))
		}

		tokenFile := config.Gmail.TokenFile
		if tokenFile == "" {
			tokenFile = "token.json"
		}

		gmail, err = ingestion.NewGmailClient(ctx, config.Gmail.CredentialsFile, tokenFile, logger)
		if err != nil {
			logger.Fatal("connecting to gmail", zap.Error(err))
		}

		query := config.Gmail.Query
		if query == "" {
			query = defaultQuery
		}

		msgs, err = gmail.FetchMessages(ctx, query)
		if err != nil {
			logger.Fatal("fetching messages", zap.Error(err))
		}
	}

	scanner := agent.New(logger)
	records, processedIDs := scanner.Process(ctx, msgs)

	if config.Output != nil && config.Output.Append {
		existing, err := export.LoadCandidates(output)
		if err != nil {
			logger.Fatal("loading existing candidates", zap.Error(err))
		}
		records = export.MergeCandidates(existing, records)
	}

	summary := scanner.Summary(records)

	if err := export.SaveCandidates(records, summary, output); err != nil {
		logger.Fatal("saving candidate sheet", zap.Error(err))
	}

	// Only mail that actually became a candidate record is marked read;
	// rejected messages stay unread for a human to catch.
	if gmail != nil && (config.Gmail == nil || !config.Gmail.KeepUnread) {
		for _, id := range processedIDs {
			if err := gmail.MarkRead(ctx, id); err != nil {
				logger.Warn("marking message as read", zap.String("id", id), zap.Error(err))
			}
		}
	}

	printSummary(summary, output)
}

// printSummary gives the operator a human-readable wrap-up.
func printSummary(summary models.RatingSummary, output string) {
	fmt.Printf("\nProcessed %d candidate(s), report saved to %s\n", summary.TotalCandidates, output)
	if summary.TotalCandidates == 0 {
		return
	}
	fmt.Printf("Average score: %.1f\n", summary.AverageScore)
	for _, level := range []string{scoring.LevelJunior, scoring.LevelMid, scoring.LevelSenior} {
		fmt.Printf("  %-10s %3d (%.1f%%)\n", level, summary.LevelCounts[level], summary.LevelPercentages[level])
	}
}
