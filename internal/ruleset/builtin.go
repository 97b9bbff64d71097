// Package ruleset holds the categorization rule tables: the immutable
// built-in fallback patterns and a YAML-backed store for user rules. The
// built-in table is injected into the categorizer at construction time so
// tests can substitute alternate tables; it is never global mutable state.
package ruleset

import "spendlens/internal/models"

// DefaultTable returns the built-in pattern table in its declared order.
// Order matters: the categorizer walks it front to back and the first
// substring match wins.
func DefaultTable() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: "food", Keywords: []string{"restaurant", "cafe", "pizza", "burger", "food", "kitchen", "diner", "grill", "bistro"}},
		{Name: "groceries", Keywords: []string{"grocery", "supermarket", "market", "walmart", "target", "costco", "safeway"}},
		{Name: "gas", Keywords: []string{"gas", "fuel", "shell", "exxon", "bp", "chevron", "mobil"}},
		{Name: "shopping", Keywords: []string{"store", "shop", "retail", "amazon", "ebay", "mall"}},
		{Name: "transport", Keywords: []string{"uber", "lyft", "taxi", "bus", "train", "metro", "parking"}},
		{Name: "entertainment", Keywords: []string{"movie", "cinema", "theater", "netflix", "spotify", "game"}},
		{Name: "utilities", Keywords: []string{"electric", "water", "gas", "internet", "phone", "cable"}},
		{Name: "healthcare", Keywords: []string{"hospital", "clinic", "pharmacy", "doctor", "medical", "health"}},
	}
}

// DescriptionTable returns the second fallback applied only to transaction
// descriptions (never merchant names): phrases that identify a transaction
// type rather than a merchant.
func DescriptionTable() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: "cash", Keywords: []string{"atm", "withdrawal", "cash"}},
		{Name: "transfer", Keywords: []string{"transfer", "deposit"}},
		{Name: "fees", Keywords: []string{"fee", "charge", "service"}},
	}
}

// SeedCategory describes one default category created at initialization.
type SeedCategory struct {
	Name        string
	Description string
	Keywords    []string
}

// DefaultSeedCategories is the default taxonomy materialized by the seed
// command. Creation is idempotent: a category whose name already exists
// (case-insensitive) is left alone.
func DefaultSeedCategories() []SeedCategory {
	return []SeedCategory{
		{Name: "Food & Dining", Description: "Restaurants, cafes, and dining out",
			Keywords: []string{"restaurant", "cafe", "pizza", "burger", "food", "dining", "kitchen", "diner", "grill", "bistro", "bar", "pub"}},
		{Name: "Groceries", Description: "Grocery stores and food shopping",
			Keywords: []string{"grocery", "supermarket", "market", "walmart", "target", "costco", "safeway", "kroger", "whole foods"}},
		{Name: "Transportation", Description: "Gas, public transport, rideshare",
			Keywords: []string{"gas", "fuel", "uber", "lyft", "taxi", "bus", "train", "metro", "parking", "shell", "exxon", "bp"}},
		{Name: "Shopping", Description: "Retail purchases and online shopping",
			Keywords: []string{"amazon", "ebay", "store", "shop", "retail", "mall", "clothing", "electronics"}},
		{Name: "Entertainment", Description: "Movies, games, streaming services",
			Keywords: []string{"netflix", "spotify", "movie", "cinema", "theater", "game", "entertainment", "music"}},
		{Name: "Utilities", Description: "Electric, water, internet, phone bills",
			Keywords: []string{"electric", "water", "gas", "internet", "phone", "cable", "utility", "bill"}},
		{Name: "Healthcare", Description: "Medical expenses and pharmacy",
			Keywords: []string{"hospital", "clinic", "pharmacy", "doctor", "medical", "health", "dentist"}},
		{Name: "Income", Description: "Salary, freelance, and other income",
			Keywords: []string{"salary", "payroll", "freelance", "income", "payment", "deposit"}},
		{Name: "Fees & Charges", Description: "Bank fees, service charges",
			Keywords: []string{"fee", "charge", "service", "bank", "atm", "overdraft"}},
		{Name: "Cash & ATM", Description: "Cash withdrawals and ATM transactions",
			Keywords: []string{"atm", "withdrawal", "cash", "money"}},
	}
}
