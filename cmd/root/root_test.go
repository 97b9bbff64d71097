package root_test

import (
	"testing"

	"spendlens/cmd/root"
	"spendlens/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "spendlens", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "categorize spending")
	assert.Contains(t, root.Cmd.Long, "spendlens ingests receipt OCR text")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()

	dbFlag := root.Cmd.PersistentFlags().Lookup("db")
	assert.NotNil(t, dbFlag)
	assert.Equal(t, "spendlens.db", root.DatabasePath)
}

func TestApplyConfigFillsUnsetFlags(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Path = "from-config.db"
	cfg.CSV.Delimiter = ";"
	cfg.Rules.File = "rules.yaml"
	cfg.Sweep.BatchLimit = 25

	root.ApplyConfig(root.Cmd, cfg)

	assert.Equal(t, "from-config.db", root.DatabasePath)
	assert.Equal(t, ";", root.Delimiter)
	assert.Equal(t, "rules.yaml", root.RulesFile)
	assert.Equal(t, 25, root.BatchLimit)
}

func TestApplyConfigKeepsExplicitFlags(t *testing.T) {
	if root.Cmd.PersistentFlags().Lookup("db") == nil {
		root.Init()
	}
	require.NoError(t, root.Cmd.PersistentFlags().Set("db", "explicit.db"))

	cfg := &config.Config{}
	cfg.Storage.Path = "ignored.db"
	root.ApplyConfig(root.Cmd, cfg)

	assert.Equal(t, "explicit.db", root.DatabasePath)
}
