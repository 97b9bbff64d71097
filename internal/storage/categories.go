package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spendlens/internal/apperror"
	"spendlens/internal/logging"
	"spendlens/internal/models"
	"spendlens/internal/ruleset"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// GetCategories returns all active categories ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]models.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, description, is_system, is_active, created_at
		FROM categories
		WHERE is_active = 1
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &apperror.StorageError{Op: "query categories", Err: err}
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.IsSystem, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, &apperror.StorageError{Op: "scan category", Err: err}
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperror.StorageError{Op: "iterate categories", Err: err}
	}

	return categories, nil
}

// GetCategoryByName returns the category with the given name, matched
// case-insensitively via the column collation. Returns nil when absent.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("category name cannot be empty")
	}

	query := `
		SELECT id, name, description, is_system, is_active, created_at
		FROM categories
		WHERE name = ?`

	var cat models.Category
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&cat.ID, &cat.Name, &cat.Description, &cat.IsSystem, &cat.IsActive, &cat.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperror.StorageError{Op: "query category", Err: err}
	}

	return &cat, nil
}

// GetOrCreateCategory returns the category with the given name, creating
// it as a system category when absent. Creation is idempotent and
// race-tolerant: a uniqueness conflict from a concurrent writer is
// resolved by re-reading; only a failing re-read surfaces as an error.
func (s *SQLiteStorage) GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("category name cannot be empty")
	}

	existing, err := s.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsActive {
			if _, err := s.db.ExecContext(ctx, `UPDATE categories SET is_active = 1 WHERE id = ?`, existing.ID); err != nil {
				return nil, &apperror.StorageError{Op: "reactivate category", Err: err}
			}
			existing.IsActive = true
			s.logger.WithField("name", existing.Name).Info("reactivated existing category")
		}
		return existing, nil
	}

	cat := models.Category{
		ID:        uuid.NewString(),
		Name:      models.TitleCase(name),
		IsSystem:  true,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, description, is_system, is_active, created_at)
		 VALUES (?, ?, ?, 1, 1, ?)`,
		cat.ID, cat.Name, cat.Description, cat.CreatedAt,
	)
	if err != nil {
		if isUniqueConflict(err) {
			// Lost the race to a concurrent writer: the row exists now.
			winner, refetchErr := s.GetCategoryByName(ctx, name)
			if refetchErr != nil {
				return nil, refetchErr
			}
			if winner == nil {
				return nil, &apperror.StorageError{Op: "re-read category after conflict", Err: err}
			}
			return winner, nil
		}
		return nil, &apperror.StorageError{Op: "insert category", Err: err}
	}

	s.logger.WithFields(
		logging.Field{Key: "name", Value: cat.Name},
		logging.Field{Key: "id", Value: cat.ID},
	).Debug("materialized category")
	return &cat, nil
}

// SeedSystemCategories creates the default taxonomy: one system category
// and one system rule per seed entry. Repeated runs are no-ops for names
// that already exist.
func (s *SQLiteStorage) SeedSystemCategories(ctx context.Context, seeds []ruleset.SeedCategory) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	created := 0
	for _, seed := range seeds {
		existing, err := s.GetCategoryByName(ctx, seed.Name)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		now := time.Now().UTC()
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO categories (id, name, description, is_system, is_active, created_at)
			 VALUES (?, ?, ?, 1, 1, ?)`,
			uuid.NewString(), seed.Name, seed.Description, now,
		)
		if err != nil {
			if isUniqueConflict(err) {
				continue
			}
			return created, &apperror.StorageError{Op: "seed category", Err: err}
		}

		if _, err := s.AddRule(ctx, models.CategoryRule{
			CategoryName: seed.Name,
			Keywords:     seed.Keywords,
			IsSystem:     true,
		}); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

func isUniqueConflict(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
