// Package seed installs the default category taxonomy
package seed

import (
	"context"

	"github.com/spf13/cobra"

	"spendlens/cmd/common"
	"spendlens/cmd/root"
	"spendlens/internal/ruleset"
)

// Cmd represents the seed command
var Cmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default categories and their keyword rules",
	Long: `Create the built-in category taxonomy with one keyword rule per
category. Running it again only adds categories that are still missing.`,
	Run: seedFunc,
}

func seedFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Seed command called")

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	created, err := app.Store.SeedSystemCategories(context.Background(), ruleset.DefaultSeedCategories())
	if err != nil {
		root.Log.Fatalf("Error seeding categories: %v", err)
	}

	root.Log.Infof("Seeding finished: %d categories created", created)
}
