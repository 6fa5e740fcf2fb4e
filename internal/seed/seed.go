// Package seed imports categories and submissions from a TOML file.
//
// A seed file looks like:
//
//	[[categories]]
//	name = "Jalur Reguler"
//	description = "General admission"
//
//	[[submissions]]
//	name = "Gelombang 1"
//	category = "jalur-reguler"
//	status = "open"
//	quota = 120
//	academic_year = "2025/2026"
//	open_date = "2025-01-15"
//	close_date = "2025-03-31"
//
// Submissions refer to categories by slug (or name). Omitted submission
// fields take the same defaults as a blank console form.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/Veraticus/intake/internal/admin"
	"github.com/Veraticus/intake/internal/common"
	"github.com/Veraticus/intake/internal/model"
)

// File is a decoded seed file.
type File struct {
	Categories  []CategoryRecord   `toml:"categories"`
	Submissions []SubmissionRecord `toml:"submissions"`
}

// CategoryRecord is one [[categories]] entry.
type CategoryRecord struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// SubmissionRecord is one [[submissions]] entry.
type SubmissionRecord struct {
	Quota        *int   `toml:"quota"`
	Name         string `toml:"name"`
	Category     string `toml:"category"`
	Status       string `toml:"status"`
	AcademicYear string `toml:"academic_year"`
	OpenDate     string `toml:"open_date"`
	CloseDate    string `toml:"close_date"`
	Description  string `toml:"description"`
}

// Len returns the number of records in the file.
func (f *File) Len() int {
	return len(f.Categories) + len(f.Submissions)
}

// Parse decodes a seed file. Unknown keys are rejected so typos surface.
func Parse(r io.Reader) (*File, error) {
	var file File
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("unknown field in seed file: %s", strictErr.String())
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &file, nil
}

// Load reads and decodes the seed file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// ProgressFunc is called after each record is processed.
type ProgressFunc func(done, total int, label string)

// Options control how a seed file is applied.
type Options struct {
	Progress ProgressFunc
	// Strict fails on the first duplicate slug instead of skipping it.
	Strict bool
}

// Result counts what Apply did.
type Result struct {
	Created int
	Skipped int
}

// Apply creates every record in file through svc, categories first.
// Records whose slug already exists are skipped unless opts.Strict is set.
// Any other failure stops the import; records created before it remain.
func Apply(ctx context.Context, svc *admin.Service, file *File, opts Options) (Result, error) {
	var result Result
	total := file.Len()
	done := 0

	step := func(label string, err error) error {
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, common.ErrDuplicateSlug) && !opts.Strict:
			slog.Info("skipping existing record", "name", label)
			result.Skipped++
		default:
			return fmt.Errorf("failed to import %q: %w", label, err)
		}
		done++
		if opts.Progress != nil {
			opts.Progress(done, total, label)
		}
		return nil
	}

	for _, rec := range file.Categories {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, err := svc.CreateCategory(ctx, model.CategoryInput{
			Name:        rec.Name,
			Description: rec.Description,
		})
		if err := step(rec.Name, err); err != nil {
			return result, err
		}
	}

	for _, rec := range file.Submissions {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		input, err := submissionInput(ctx, svc, rec)
		if err == nil {
			_, err = svc.CreateSubmission(ctx, input)
		}
		if err := step(rec.Name, err); err != nil {
			return result, err
		}
	}

	return result, nil
}

func submissionInput(ctx context.Context, svc *admin.Service, rec SubmissionRecord) (model.SubmissionInput, error) {
	cat, err := svc.ResolveCategory(ctx, rec.Category)
	if err != nil {
		return model.SubmissionInput{}, err
	}

	input := svc.NewSubmissionInput()
	input.Name = rec.Name
	input.CategoryID = cat.ID
	input.OpenDate = rec.OpenDate
	input.CloseDate = rec.CloseDate
	input.Description = rec.Description
	if rec.Status != "" {
		input.Status = model.SubmissionStatus(rec.Status)
	}
	if rec.Quota != nil {
		input.Quota = *rec.Quota
	}
	if rec.AcademicYear != "" {
		input.AcademicYear = rec.AcademicYear
	}
	return input, nil
}
