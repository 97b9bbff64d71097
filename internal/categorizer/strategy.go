package categorizer

import (
	"context"

	"spendlens/internal/models"
)

// Strategy is one step of the categorization chain. Strategies are tried
// in order; the first one reporting found wins.
type Strategy interface {
	// Categorize attempts to categorize the input. The rules slice holds
	// the persisted rules in stored order; strategies that do not consult
	// persisted rules ignore it.
	Categorize(ctx context.Context, in Input, rules []models.CategoryRule) (*models.Category, bool, error)

	// Name identifies the strategy in logs.
	Name() string
}
