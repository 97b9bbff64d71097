package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"spendlens/internal/apperror"
	"spendlens/internal/models"

	"github.com/google/uuid"
)

// ActiveRules returns all active categorization rules in stored order.
func (s *SQLiteStorage) ActiveRules(ctx context.Context) ([]models.CategoryRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category_name, keywords, is_system, is_active, position
		FROM category_rules
		WHERE is_active = 1
		ORDER BY position, created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &apperror.StorageError{Op: "query rules", Err: err}
	}
	defer rows.Close()

	var rules []models.CategoryRule
	for rows.Next() {
		var rule models.CategoryRule
		var keywordsJSON string
		if err := rows.Scan(&rule.ID, &rule.CategoryName, &keywordsJSON, &rule.IsSystem, &rule.IsActive, &rule.Position); err != nil {
			return nil, &apperror.StorageError{Op: "scan rule", Err: err}
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &rule.Keywords); err != nil {
			return nil, &apperror.StorageError{Op: "decode rule keywords", Err: err}
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperror.StorageError{Op: "iterate rules", Err: err}
	}

	return rules, nil
}

// AddRule appends a categorization rule after the last stored position.
func (s *SQLiteStorage) AddRule(ctx context.Context, rule models.CategoryRule) (*models.CategoryRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if rule.CategoryName == "" {
		return nil, fmt.Errorf("rule category name cannot be empty")
	}
	if len(rule.Keywords) == 0 {
		return nil, fmt.Errorf("rule must have at least one keyword")
	}

	keywordsJSON, err := json.Marshal(rule.Keywords)
	if err != nil {
		return nil, &apperror.StorageError{Op: "encode rule keywords", Err: err}
	}

	var maxPos sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(position) FROM category_rules`).Scan(&maxPos); err != nil {
		return nil, &apperror.StorageError{Op: "query rule position", Err: err}
	}

	rule.ID = uuid.NewString()
	rule.IsActive = true
	rule.Position = 0
	if maxPos.Valid {
		rule.Position = int(maxPos.Int64) + 1
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO category_rules (id, category_name, keywords, is_system, is_active, position, created_at)
		 VALUES (?, ?, ?, ?, 1, ?, ?)`,
		rule.ID, rule.CategoryName, string(keywordsJSON), rule.IsSystem, rule.Position, time.Now().UTC(),
	)
	if err != nil {
		return nil, &apperror.StorageError{Op: "insert rule", Err: err}
	}

	return &rule, nil
}

// DeactivateRule soft-deletes a rule. The row is kept so stored
// positions of the remaining rules stay meaningful.
func (s *SQLiteStorage) DeactivateRule(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE category_rules SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return &apperror.StorageError{Op: "deactivate rule", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &apperror.StorageError{Op: "deactivate rule", Err: err}
	}
	if affected == 0 {
		return fmt.Errorf("rule %s not found", id)
	}

	return nil
}
