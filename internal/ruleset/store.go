package ruleset

import (
	"fmt"
	"os"
	"path/filepath"

	"spendlens/internal/models"

	"gopkg.in/yaml.v3"
)

// File permissions for rule files.
const rulesFileMode = 0600

// Store loads and saves user-defined category rules from a YAML file.
type Store struct {
	RulesFile string
}

// NewStore creates a rule store for the given file. A relative path is
// resolved against the standard config locations on load.
func NewStore(rulesFile string) *Store {
	if rulesFile == "" {
		rulesFile = "rules.yaml"
	}
	return &Store{RulesFile: rulesFile}
}

// FindConfigFile looks for a configuration file in standard locations:
// the working directory, ./config, and ~/.config/spendlens.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "spendlens", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules reads user rules, preserving file order. A missing file is not
// an error; it yields an empty rule list.
func (s *Store) LoadRules() ([]models.CategoryRule, error) {
	path, err := FindConfigFile(s.RulesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.CategoryRule{}, nil
		}
		return nil, fmt.Errorf("error resolving rules file %s: %w", s.RulesFile, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file %s: %w", path, err)
	}

	var cfg models.RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}

	rules := cfg.Rules
	for i := range rules {
		rules[i].IsActive = true
		rules[i].Position = i
	}
	return rules, nil
}

// SaveRules writes rules back in their current order.
func (s *Store) SaveRules(rules []models.CategoryRule) error {
	data, err := yaml.Marshal(models.RulesConfig{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}

	path := s.RulesFile
	if resolved, err := FindConfigFile(s.RulesFile); err == nil {
		path = resolved
	}

	if err := os.WriteFile(path, data, rulesFileMode); err != nil {
		return fmt.Errorf("error writing rules file %s: %w", path, err)
	}
	return nil
}
