package categorizer

import (
	"context"
	"strings"

	"spendlens/internal/logging"
	"spendlens/internal/models"
)

// RuleStrategy matches the persisted rules in their stored order. A rule
// participates only when active and carrying at least one keyword.
type RuleStrategy struct {
	store  CategoryStore
	logger logging.Logger
}

// Name identifies the strategy in logs.
func (s *RuleStrategy) Name() string {
	return "rules"
}

// Categorize returns the category of the first rule with a keyword that is
// a substring of the lowercased input.
func (s *RuleStrategy) Categorize(ctx context.Context, in Input, rules []models.CategoryRule) (*models.Category, bool, error) {
	lower := strings.ToLower(in.Text)

	for _, rule := range rules {
		if !rule.IsActive || len(rule.Keywords) == 0 {
			continue
		}
		for _, keyword := range rule.Keywords {
			if keyword == "" || !strings.Contains(lower, strings.ToLower(keyword)) {
				continue
			}
			category, err := s.store.GetOrCreateCategory(ctx, rule.CategoryName)
			if err != nil {
				return nil, false, err
			}
			s.logger.WithFields(
				logging.Field{Key: "keyword", Value: keyword},
				logging.Field{Key: "category", Value: rule.CategoryName},
			).Debug("matched persisted rule")
			return category, true, nil
		}
	}

	return nil, false, nil
}
