package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendlens/internal/models"
)

func TestLoadRulesMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "rules.yaml"))

	rules, err := store.LoadRules()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestSaveAndLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	store := NewStore(path)

	in := []models.CategoryRule{
		{CategoryName: "Coffee", Keywords: []string{"starbucks", "blue bottle"}},
		{CategoryName: "Books", Keywords: []string{"bookstore"}},
	}
	require.NoError(t, store.SaveRules(in))

	out, err := store.LoadRules()
	require.NoError(t, err)
	require.Len(t, out, 2)

	// File order becomes rule order.
	assert.Equal(t, "Coffee", out[0].CategoryName)
	assert.Equal(t, 0, out[0].Position)
	assert.True(t, out[0].IsActive)
	assert.Equal(t, []string{"starbucks", "blue bottle"}, out[0].Keywords)
	assert.Equal(t, "Books", out[1].CategoryName)
	assert.Equal(t, 1, out[1].Position)
}

func TestLoadRulesInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [unclosed"), 0600))

	store := NewStore(path)
	_, err := store.LoadRules()
	assert.Error(t, err)
}

func TestDefaultTableOrder(t *testing.T) {
	table := DefaultTable()
	require.NotEmpty(t, table)

	assert.Equal(t, "food", table[0].Name)

	// "gas" is a keyword of both the gas and utilities entries; gas must
	// come first so fuel merchants do not land in utilities.
	gasIdx, utilitiesIdx := -1, -1
	for i, entry := range table {
		switch entry.Name {
		case "gas":
			gasIdx = i
		case "utilities":
			utilitiesIdx = i
		}
	}
	require.NotEqual(t, -1, gasIdx)
	require.NotEqual(t, -1, utilitiesIdx)
	assert.Less(t, gasIdx, utilitiesIdx)
}

func TestDescriptionTable(t *testing.T) {
	table := DescriptionTable()
	require.Len(t, table, 3)
	assert.Equal(t, "cash", table[0].Name)
	assert.Equal(t, "transfer", table[1].Name)
	assert.Equal(t, "fees", table[2].Name)
}
