package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/intake/internal/model"
	"github.com/google/uuid"
)

const categoryColumns = `id, name, slug, description, created_at, updated_at`

// ListCategories returns all categories, most recently created first.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategory returns the category with the given id.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	return s.getCategoryWhere(ctx, "id", id)
}

// GetCategoryBySlug returns the category holding slug.
func (s *SQLiteStorage) GetCategoryBySlug(ctx context.Context, want string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(want, "slug"); err != nil {
		return nil, err
	}

	return s.getCategoryWhere(ctx, "slug", want)
}

// getCategoryWhere looks up one category by an indexed unique column.
func (s *SQLiteStorage) getCategoryWhere(ctx context.Context, column, value string) (*model.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE `+column+` = ?`, value)
	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("category", value)
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory creates a new category whose slug is derived from its name.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	input, categorySlug, err := normalizeCategory(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	category := &model.Category{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Slug:        categorySlug,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		owner, err := slugOwner(ctx, tx, "categories", categorySlug)
		if err != nil {
			return err
		}
		if owner != "" {
			return duplicateSlug("category", categorySlug)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, slug, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			category.ID, category.Name, category.Slug, nullString(category.Description),
			category.CreatedAt, category.UpdatedAt,
		)
		if isUniqueViolation(err) {
			return duplicateSlug("category", categorySlug)
		}
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("created category", "id", category.ID, "slug", category.Slug)
	return category, nil
}

// UpdateCategory overwrites a category's name and description and regenerates its slug.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id string, input model.CategoryInput) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	input, categorySlug, err := normalizeCategory(input)
	if err != nil {
		return err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		exists, err := rowExists(ctx, tx, "categories", id)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("category", id)
		}

		owner, err := slugOwner(ctx, tx, "categories", categorySlug)
		if err != nil {
			return err
		}
		if owner != "" && owner != id {
			return duplicateSlug("category", categorySlug)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE categories
			SET name = ?, slug = ?, description = ?, updated_at = ?
			WHERE id = ?`,
			input.Name, categorySlug, nullString(input.Description), s.now(), id,
		)
		if isUniqueViolation(err) {
			return duplicateSlug("category", categorySlug)
		}
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("updated category", "id", id, "slug", categorySlug)
	return nil
}

// DeleteCategory removes a category. Submissions referencing it are left untouched.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if affected == 0 {
			return notFound("category", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("deleted category", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (model.Category, error) {
	var (
		cat         model.Category
		description sql.NullString
	)
	err := row.Scan(&cat.ID, &cat.Name, &cat.Slug, &description, &cat.CreatedAt, &cat.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return cat, err
	}
	if err != nil {
		return cat, fmt.Errorf("failed to scan category: %w", err)
	}
	cat.Description = description.String
	return cat, nil
}
