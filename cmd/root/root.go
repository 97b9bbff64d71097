// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"spendlens/internal/config"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spendlens",
		Short: "A CLI tool to extract receipts from OCR text, SMS and email and categorize spending.",
		Long: `spendlens ingests receipt OCR text, bank SMS notifications and merchant
emails, extracts merchant, amount, tax, tip and date from them, and
assigns spending categories with keyword rules.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to spendlens!")
			Log.Info("Use --help to see available commands")
		},
	}

	// DatabasePath is the SQLite database file shared by all commands.
	DatabasePath = "spendlens.db"

	// Specific ingest command flags
	InputFile string
	Sender    string
	Subject   string
	Date      string

	// Specific batch command flags
	InputDir   string
	SourceType string

	// Specific categorize command flags
	MerchantName  string
	IsDescription bool

	// Specific sweep command flags
	BatchLimit int

	// Specific export command flags
	OutputFile string
	Delimiter  string

	// Specific rules command flags
	RulesFile string
)

func init() {
	Cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		ApplyConfig(cmd, config.GetGlobalConfig())
	}
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&DatabasePath, "db", DatabasePath, "SQLite database file")
}

// ApplyConfig points the shared logger at the configured settings and fills
// the shared flag values from configuration where the user did not pass the
// flag explicitly.
func ApplyConfig(cmd *cobra.Command, cfg *config.Config) {
	Log = config.Logger

	if !Cmd.PersistentFlags().Changed("db") && cfg.Storage.Path != "" {
		Log.WithField("path", cfg.Storage.Path).Debug("Using database path from configuration")
		DatabasePath = cfg.Storage.Path
	}
	if !cmd.Flags().Changed("delimiter") && cfg.CSV.Delimiter != "" {
		Delimiter = cfg.CSV.Delimiter
	}
	if !cmd.Flags().Changed("limit") {
		BatchLimit = cfg.Sweep.BatchLimit
	}
	if !cmd.Flags().Changed("file") && cfg.Rules.File != "" {
		RulesFile = cfg.Rules.File
	}
}
