// Package batch handles batch ingestion of document directories
package batch

import (
	"context"

	"github.com/spf13/cobra"

	"spendlens/cmd/common"
	"spendlens/cmd/root"
	"spendlens/internal/pipeline"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Ingest every .txt document in a directory",
	Long: `Ingest all .txt files in a directory as documents of one source type
(receipt_ocr, sms or email). Files are processed in name order.`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputDir, "input-dir", "i", "", "Directory of .txt documents")
	Cmd.Flags().StringVarP(&root.SourceType, "source", "s", "", "Source type for all documents (default receipt_ocr)")
	_ = Cmd.MarkFlagRequired("input-dir")
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	source := pipeline.NewDirectorySource(root.InputDir, root.SourceType)
	completed, err := app.Pipeline.IngestAll(context.Background(), source)
	if err != nil {
		root.Log.Fatalf("Error during batch ingestion: %v", err)
	}

	root.Log.Infof("Batch ingestion finished: %d receipts completed", completed)
}
