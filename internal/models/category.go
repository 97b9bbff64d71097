package models

import "time"

// Category represents a spending category. System categories are created by
// the built-in fallback pattern table; user categories come from the API
// layer. Categories are soft-deactivated, never hard-deleted while
// referenced.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsSystem    bool      `json:"is_system"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryRule associates an ordered set of lowercase keywords with a
// category name. Rules are matched by substring against a lowercased
// merchant name, in stored order, first match wins.
type CategoryRule struct {
	ID           string   `json:"id" yaml:"-"`
	CategoryName string   `json:"category" yaml:"category"`
	Keywords     []string `json:"keywords" yaml:"keywords"`
	IsSystem     bool     `json:"is_system" yaml:"-"`
	IsActive     bool     `json:"is_active" yaml:"-"`
	Position     int      `json:"position" yaml:"-"`
}

// CategoryConfig is one entry of the built-in (or file-backed) pattern
// table: a category label and its keyword list.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// RulesConfig is the on-disk shape of a user rule file.
type RulesConfig struct {
	Rules []CategoryRule `yaml:"rules"`
}
