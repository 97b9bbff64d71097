// Package export writes stored receipts to a CSV file
package export

import (
	"context"

	"github.com/spf13/cobra"

	"spendlens/cmd/common"
	"spendlens/cmd/root"
	"spendlens/internal/export"
	"spendlens/internal/models"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export all receipts to CSV",
	Long:  `Export every stored receipt, with its resolved category, to a CSV file.`,
	Run:   exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.OutputFile, "output", "o", "", "Output CSV file")
	Cmd.Flags().StringVarP(&root.Delimiter, "delimiter", "d", ",", "CSV field delimiter")
	_ = Cmd.MarkFlagRequired("output")
}

func exportFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Export command called")

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	receipts, err := app.Store.ListReceipts(context.Background())
	if err != nil {
		root.Log.Fatalf("Error listing receipts: %v", err)
	}
	if receipts == nil {
		receipts = []models.Receipt{}
	}

	delimiter := ','
	if root.Delimiter != "" {
		delimiter = []rune(root.Delimiter)[0]
	}

	writer := export.NewWriter(delimiter, app.Logger)
	if err := writer.WriteFile(receipts, root.OutputFile); err != nil {
		root.Log.Fatalf("Error writing CSV: %v", err)
	}

	root.Log.Infof("Exported %d receipts to %s", len(receipts), root.OutputFile)
}
