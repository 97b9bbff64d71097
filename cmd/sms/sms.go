// Package sms handles ingestion of bank and card SMS notifications
package sms

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"spendlens/cmd/common"
	"spendlens/cmd/root"
	"spendlens/internal/models"
	"spendlens/internal/pipeline"
)

// Cmd represents the sms command
var Cmd = &cobra.Command{
	Use:   "sms",
	Short: "Ingest an SMS transaction notification",
	Long: `Ingest one SMS message body. Messages without receipt keywords are
stored for inspection but not treated as receipts.`,
	Run: smsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputFile, "input", "i", "", "File containing the SMS body")
	Cmd.Flags().StringVarP(&root.Sender, "sender", "s", "", "Sender phone number or short code")
	_ = Cmd.MarkFlagRequired("input")
}

func smsFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("SMS command called")

	data, err := os.ReadFile(root.InputFile)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	receipt, err := app.Pipeline.Ingest(context.Background(), pipeline.Document{
		Source: models.SourceSMS,
		Text:   string(data),
		Sender: root.Sender,
	})
	if err != nil {
		root.Log.Fatalf("Error ingesting SMS: %v", err)
	}

	app.ReportReceipt(root.Log, receipt)
}
