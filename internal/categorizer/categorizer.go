// Package categorizer assigns spending categories to merchant names and
// transaction descriptions. Matching is keyword-substring based: persisted
// rules first in stored order, then an injected built-in pattern table,
// then (for descriptions only) a transaction-type fallback. First match
// wins; there is no scoring. Absence of a match is signaled by a nil
// category, never by an error.
package categorizer

import (
	"context"
	"strings"

	"spendlens/internal/logging"
	"spendlens/internal/models"
)

// CategoryStore is the persistence surface the categorizer needs: lazy,
// idempotent category materialization. Implementations must treat a
// unique-constraint conflict as "re-fetch and return the existing row".
type CategoryStore interface {
	GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error)
}

// Input is the text to categorize. The description flag selects the
// description-only fallback table; it is never applied to merchant names.
type Input struct {
	Text          string
	IsDescription bool
}

// MerchantInput categorizes by merchant name.
func MerchantInput(name string) Input {
	return Input{Text: name}
}

// DescriptionInput categorizes by free-text transaction description.
func DescriptionInput(desc string) Input {
	return Input{Text: desc, IsDescription: true}
}

// Categorizer runs the strategy chain over an input.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// New builds a categorizer around the given built-in pattern table and
// store. The table is the caller's: tests substitute alternate tables by
// passing them here.
func New(table, descriptionTable []models.CategoryConfig, store CategoryStore, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{
		strategies: []Strategy{
			&RuleStrategy{store: store, logger: logger},
			&PatternStrategy{table: table, store: store, logger: logger},
			&DescriptionStrategy{table: descriptionTable, store: store, logger: logger},
		},
		logger: logger,
	}
}

// Categorize returns the first matching category for the input, or nil
// when no rule anywhere matches. It never fails for any input shape;
// the only errors it returns are storage errors from lazy category
// materialization, propagated unchanged.
func (c *Categorizer) Categorize(ctx context.Context, in Input, rules []models.CategoryRule) (*models.Category, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, nil
	}

	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, in, rules)
		if err != nil {
			return nil, err
		}
		if found {
			c.logger.WithFields(
				logging.Field{Key: "strategy", Value: strategy.Name()},
				logging.Field{Key: "input", Value: in.Text},
				logging.Field{Key: "category", Value: category.Name},
			).Debug("input categorized")
			return category, nil
		}
	}

	return nil, nil
}

// matchTable walks an ordered (category, keywords) table and returns the
// first category whose keyword is a substring of the lowercased input.
func matchTable(lower string, table []models.CategoryConfig) (string, bool) {
	for _, entry := range table {
		for _, keyword := range entry.Keywords {
			if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
				return entry.Name, true
			}
		}
	}
	return "", false
}
