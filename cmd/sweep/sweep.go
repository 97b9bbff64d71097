// Package sweep re-runs categorization over the uncategorized backlog
package sweep

import (
	"context"

	"github.com/spf13/cobra"

	"spendlens/cmd/common"
	"spendlens/cmd/root"
)

// Cmd represents the sweep command
var Cmd = &cobra.Command{
	Use:   "sweep",
	Short: "Categorize completed receipts that have no category yet",
	Long: `Walk the uncategorized receipts and retry rule matching. Useful after
adding rules, since new rules are not applied retroactively on their own.`,
	Run: sweepFunc,
}

func init() {
	Cmd.Flags().IntVarP(&root.BatchLimit, "limit", "l", 0, "Maximum receipts to examine (0 for all)")
}

func sweepFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Sweep command called")

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	result, err := app.Pipeline.Sweep(context.Background(), root.BatchLimit)
	if err != nil {
		root.Log.Fatalf("Error during sweep: %v", err)
	}

	root.Log.Infof("Sweep finished: %d examined, %d categorized, %d failed",
		result.Examined, result.Categorized, result.Failed)
}
