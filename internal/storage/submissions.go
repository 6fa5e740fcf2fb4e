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

const submissionColumns = `s.id, s.name, s.slug, s.category_id, s.status, s.open_date, s.close_date,
	s.quota, s.academic_year, s.description, s.created_at, s.updated_at`

// ListSubmissions returns all submissions, most recently created first, each
// joined with its category. Orphaned references yield a nil Category.
func (s *SQLiteStorage) ListSubmissions(ctx context.Context) ([]model.SubmissionWithCategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + submissionColumns + `,
			c.id, c.name, c.slug, c.description, c.created_at, c.updated_at
		FROM submissions s
		LEFT JOIN categories c ON c.id = s.category_id
		ORDER BY s.seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]model.SubmissionWithCategory, 0)
	for rows.Next() {
		var (
			sub         model.Submission
			openDate    sql.NullString
			closeDate   sql.NullString
			description sql.NullString
			catID       sql.NullString
			catName     sql.NullString
			catSlug     sql.NullString
			catDesc     sql.NullString
			catCreated  sql.NullTime
			catUpdated  sql.NullTime
		)
		err := rows.Scan(
			&sub.ID, &sub.Name, &sub.Slug, &sub.CategoryID, &sub.Status, &openDate, &closeDate,
			&sub.Quota, &sub.AcademicYear, &description, &sub.CreatedAt, &sub.UpdatedAt,
			&catID, &catName, &catSlug, &catDesc, &catCreated, &catUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.OpenDate = openDate.String
		sub.CloseDate = closeDate.String
		sub.Description = description.String

		item := model.SubmissionWithCategory{Submission: sub}
		if catID.Valid {
			item.Category = &model.Category{
				ID:          catID.String,
				Name:        catName.String,
				Slug:        catSlug.String,
				Description: catDesc.String,
				CreatedAt:   catCreated.Time,
				UpdatedAt:   catUpdated.Time,
			}
		}
		submissions = append(submissions, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	slog.Debug("retrieved submissions", "count", len(submissions))
	return submissions, nil
}

// GetSubmission returns the submission with the given id.
func (s *SQLiteStorage) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	return s.getSubmissionWhere(ctx, "id", id)
}

// GetSubmissionBySlug returns the submission holding slug.
func (s *SQLiteStorage) GetSubmissionBySlug(ctx context.Context, want string) (*model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(want, "slug"); err != nil {
		return nil, err
	}

	return s.getSubmissionWhere(ctx, "slug", want)
}

// getSubmissionWhere looks up one submission by an indexed unique column.
func (s *SQLiteStorage) getSubmissionWhere(ctx context.Context, column, value string) (*model.Submission, error) {
	var (
		sub         model.Submission
		openDate    sql.NullString
		closeDate   sql.NullString
		description sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions s WHERE s.`+column+` = ?`, value).Scan(
		&sub.ID, &sub.Name, &sub.Slug, &sub.CategoryID, &sub.Status, &openDate, &closeDate,
		&sub.Quota, &sub.AcademicYear, &description, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("submission", value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}
	sub.OpenDate = openDate.String
	sub.CloseDate = closeDate.String
	sub.Description = description.String
	return &sub, nil
}

// CreateSubmission creates a new submission. Its slug only has to be unique
// among submissions; the category reference is stored without checking.
func (s *SQLiteStorage) CreateSubmission(ctx context.Context, input model.SubmissionInput) (*model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	input, submissionSlug, err := normalizeSubmission(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	submission := &model.Submission{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Slug:         submissionSlug,
		CategoryID:   input.CategoryID,
		Status:       input.Status,
		OpenDate:     input.OpenDate,
		CloseDate:    input.CloseDate,
		Quota:        input.Quota,
		AcademicYear: input.AcademicYear,
		Description:  input.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		owner, err := slugOwner(ctx, tx, "submissions", submissionSlug)
		if err != nil {
			return err
		}
		if owner != "" {
			return duplicateSlug("submission", submissionSlug)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO submissions (
				id, name, slug, category_id, status, open_date, close_date,
				quota, academic_year, description, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			submission.ID, submission.Name, submission.Slug, submission.CategoryID,
			string(submission.Status), nullString(submission.OpenDate), nullString(submission.CloseDate),
			submission.Quota, submission.AcademicYear, nullString(submission.Description),
			submission.CreatedAt, submission.UpdatedAt,
		)
		if isUniqueViolation(err) {
			return duplicateSlug("submission", submissionSlug)
		}
		if err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("created submission",
		"id", submission.ID,
		"slug", submission.Slug,
		"category_id", submission.CategoryID,
		"status", submission.Status)
	return submission, nil
}

// UpdateSubmission overwrites every mutable field of a submission and
// regenerates its slug.
func (s *SQLiteStorage) UpdateSubmission(ctx context.Context, id string, input model.SubmissionInput) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	input, submissionSlug, err := normalizeSubmission(input)
	if err != nil {
		return err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		exists, err := rowExists(ctx, tx, "submissions", id)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("submission", id)
		}

		owner, err := slugOwner(ctx, tx, "submissions", submissionSlug)
		if err != nil {
			return err
		}
		if owner != "" && owner != id {
			return duplicateSlug("submission", submissionSlug)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE submissions
			SET name = ?, slug = ?, category_id = ?, status = ?, open_date = ?, close_date = ?,
				quota = ?, academic_year = ?, description = ?, updated_at = ?
			WHERE id = ?`,
			input.Name, submissionSlug, input.CategoryID, string(input.Status),
			nullString(input.OpenDate), nullString(input.CloseDate),
			input.Quota, input.AcademicYear, nullString(input.Description), s.now(), id,
		)
		if isUniqueViolation(err) {
			return duplicateSlug("submission", submissionSlug)
		}
		if err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("updated submission", "id", id, "slug", submissionSlug, "status", input.Status)
	return nil
}

// DeleteSubmission removes a submission.
func (s *SQLiteStorage) DeleteSubmission(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete submission: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if affected == 0 {
			return notFound("submission", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("deleted submission", "id", id)
	return nil
}
