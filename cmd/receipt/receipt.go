// Package receipt handles ingestion of receipt images and OCR text
package receipt

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"spendlens/cmd/common"
	"spendlens/cmd/root"
	"spendlens/internal/models"
	"spendlens/internal/pipeline"
)

// Cmd represents the receipt command
var Cmd = &cobra.Command{
	Use:   "receipt",
	Short: "Ingest a receipt image or OCR text file",
	Long: `Ingest one receipt. Image inputs are run through the OCR provider;
.txt inputs are treated as already-extracted OCR text.`,
	Run: receiptFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputFile, "input", "i", "", "Receipt image or OCR text file")
	_ = Cmd.MarkFlagRequired("input")
}

func receiptFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Receipt command called")

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	ctx := context.Background()

	var receipt *models.Receipt
	var err error
	if strings.HasSuffix(root.InputFile, ".txt") {
		data, readErr := os.ReadFile(root.InputFile)
		if readErr != nil {
			root.Log.Fatalf("Error reading input file: %v", readErr)
		}
		receipt, err = app.Pipeline.Ingest(ctx, pipeline.Document{
			Source: models.SourceReceiptOCR,
			Text:   string(data),
		})
	} else {
		receipt, err = app.Pipeline.IngestImage(ctx, root.InputFile)
	}
	if err != nil {
		root.Log.Fatalf("Error ingesting receipt: %v", err)
	}

	app.ReportReceipt(root.Log, receipt)
}
