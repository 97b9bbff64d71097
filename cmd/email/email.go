// Package email handles ingestion of merchant receipt emails
package email

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"spendlens/cmd/common"
	"spendlens/cmd/root"
	"spendlens/internal/models"
	"spendlens/internal/pipeline"
)

// Cmd represents the email command
var Cmd = &cobra.Command{
	Use:   "email",
	Short: "Ingest a merchant receipt email",
	Long: `Ingest one email body, HTML or plain text. Emails whose subject and
body carry no receipt keywords are stored but not treated as receipts.`,
	Run: emailFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputFile, "input", "i", "", "File containing the email body")
	Cmd.Flags().StringVarP(&root.Sender, "sender", "s", "", "Sender address")
	Cmd.Flags().StringVarP(&root.Subject, "subject", "j", "", "Email subject")
	Cmd.Flags().StringVarP(&root.Date, "date", "d", "", "Email Date header value")
	_ = Cmd.MarkFlagRequired("input")
}

func emailFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Email command called")

	data, err := os.ReadFile(root.InputFile)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	receipt, err := app.Pipeline.Ingest(context.Background(), pipeline.Document{
		Source:  models.SourceEmail,
		Text:    string(data),
		Subject: root.Subject,
		Sender:  root.Sender,
		Date:    root.Date,
	})
	if err != nil {
		root.Log.Fatalf("Error ingesting email: %v", err)
	}

	app.ReportReceipt(root.Log, receipt)
}
