package categorizer

import (
	"context"
	"strings"

	"spendlens/internal/logging"
	"spendlens/internal/models"
)

// PatternStrategy is the built-in fallback: an immutable ordered pattern
// table injected at construction time. A match lazily materializes the
// category through the store, which handles the check-then-insert race by
// re-fetching on a uniqueness conflict.
type PatternStrategy struct {
	table  []models.CategoryConfig
	store  CategoryStore
	logger logging.Logger
}

// Name identifies the strategy in logs.
func (s *PatternStrategy) Name() string {
	return "builtin-patterns"
}

// Categorize matches the input against the built-in table in declared
// order.
func (s *PatternStrategy) Categorize(ctx context.Context, in Input, _ []models.CategoryRule) (*models.Category, bool, error) {
	label, ok := matchTable(strings.ToLower(in.Text), s.table)
	if !ok {
		return nil, false, nil
	}

	category, err := s.store.GetOrCreateCategory(ctx, label)
	if err != nil {
		return nil, false, err
	}
	return category, true, nil
}

// DescriptionStrategy is the second fallback, keyed on phrases that
// identify a transaction type ("atm", "transfer", "fee"). It applies only
// to the description path, never to merchant names.
type DescriptionStrategy struct {
	table  []models.CategoryConfig
	store  CategoryStore
	logger logging.Logger
}

// Name identifies the strategy in logs.
func (s *DescriptionStrategy) Name() string {
	return "description-fallback"
}

// Categorize matches description text against the transaction-type table.
func (s *DescriptionStrategy) Categorize(ctx context.Context, in Input, _ []models.CategoryRule) (*models.Category, bool, error) {
	if !in.IsDescription {
		return nil, false, nil
	}

	label, ok := matchTable(strings.ToLower(in.Text), s.table)
	if !ok {
		return nil, false, nil
	}

	category, err := s.store.GetOrCreateCategory(ctx, label)
	if err != nil {
		return nil, false, err
	}
	return category, true, nil
}
