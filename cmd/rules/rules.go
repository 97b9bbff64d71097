// Package rules manages the persisted categorization rules
package rules

import (
	"context"

	"github.com/spf13/cobra"

	"spendlens/cmd/common"
	"spendlens/cmd/root"
	"spendlens/internal/ruleset"
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Import and export categorization rules",
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Append rules from a YAML file to the database",
	Run:   importFunc,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active database rules to a YAML file",
	Run:   exportFunc,
}

func init() {
	importCmd.Flags().StringVarP(&root.RulesFile, "file", "f", "", "Rules YAML file")
	exportCmd.Flags().StringVarP(&root.RulesFile, "file", "f", "", "Rules YAML file")
	Cmd.AddCommand(importCmd)
	Cmd.AddCommand(exportCmd)
}

func importFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Rules import command called")

	if root.RulesFile == "" {
		root.Log.Fatal("No rules file given, pass --file or set rules.file in the configuration")
	}

	store := ruleset.NewStore(root.RulesFile)
	rules, err := store.LoadRules()
	if err != nil {
		root.Log.Fatalf("Error loading rules file: %v", err)
	}

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	ctx := context.Background()
	added := 0
	for _, rule := range rules {
		if _, err := app.Store.AddRule(ctx, rule); err != nil {
			root.Log.Fatalf("Error adding rule for %s: %v", rule.CategoryName, err)
		}
		added++
	}

	root.Log.Infof("Imported %d rules from %s", added, root.RulesFile)
}

func exportFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Rules export command called")

	if root.RulesFile == "" {
		root.Log.Fatal("No rules file given, pass --file or set rules.file in the configuration")
	}

	app := common.NewApp(root.DatabasePath, root.Log)
	defer app.Close()

	rules, err := app.Store.ActiveRules(context.Background())
	if err != nil {
		root.Log.Fatalf("Error loading rules: %v", err)
	}

	store := ruleset.NewStore(root.RulesFile)
	if err := store.SaveRules(rules); err != nil {
		root.Log.Fatalf("Error writing rules file: %v", err)
	}

	root.Log.Infof("Exported %d rules to %s", len(rules), root.RulesFile)
}
