// Package categorize handles merchant and description categorization commands
package categorize

import (
	"context"

	"github.com/spf13/cobra"

	"spendlens/cmd/common"
	"spendlens/cmd/root"
	"spendlens/internal/categorizer"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a merchant name or transaction description",
	Long: `Categorize a single merchant name (or, with --description, a free-text
transaction description) against the stored rules and built-in keyword
patterns. The matched category is created on first use.`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.MerchantName, "merchant", "m", "", "Merchant name or description text to categorize")
	Cmd.Flags().BoolVarP(&root.IsDescription, "description", "d", false, "Treat the input as a transaction description")
	_ = Cmd.MarkFlagRequired("merchant")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Categorize command called")

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	ctx := context.Background()
	rules := app.ActiveRules(ctx, root.Log)

	in := categorizer.MerchantInput(root.MerchantName)
	if root.IsDescription {
		in = categorizer.DescriptionInput(root.MerchantName)
	}

	category, err := app.Categorizer.Categorize(ctx, in, rules)
	if err != nil {
		root.Log.Fatalf("Error categorizing: %v", err)
	}
	if category == nil {
		root.Log.Infof("No category matched for: %s", root.MerchantName)
		return
	}

	root.Log.Infof("Category: %s", category.Name)
}
