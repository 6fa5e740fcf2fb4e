// Package storage provides the data persistence layer for the intake application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/intake/internal/common"
	"github.com/Veraticus/intake/internal/model"
	"github.com/Veraticus/intake/internal/slug"
)

// ErrNilContext is returned when a store method receives a nil context.
var ErrNilContext = errors.New("context cannot be nil")

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return common.NewValidationError(paramName, "cannot be empty")
	}
	return nil
}

// normalizeName trims a display name and derives its slug.
func normalizeName(name string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", common.NewValidationError("name", "cannot be empty")
	}
	s := slug.Generate(name)
	if s == "" {
		return "", "", common.NewValidationError("name", "must contain at least one letter or digit")
	}
	return name, s, nil
}

// normalizeCategory returns the input with a trimmed name, plus its slug.
func normalizeCategory(input model.CategoryInput) (model.CategoryInput, string, error) {
	name, s, err := normalizeName(input.Name)
	if err != nil {
		return input, "", err
	}
	input.Name = name
	return input, s, nil
}

// normalizeSubmission re-checks the invariants the store depends on. Field
// shape is validated before the store is reached; dates are kept verbatim.
func normalizeSubmission(input model.SubmissionInput) (model.SubmissionInput, string, error) {
	name, s, err := normalizeName(input.Name)
	if err != nil {
		return input, "", err
	}
	input.Name = name

	if input.Quota < 1 {
		return input, "", common.NewValidationError("quota", "must be at least 1")
	}
	if !input.Status.IsValid() {
		return input, "", common.NewValidationError("status", fmt.Sprintf("unknown status %q", input.Status))
	}
	return input, s, nil
}

func duplicateSlug(kind, s string) error {
	return fmt.Errorf("%w: %s slug %q", common.ErrDuplicateSlug, kind, s)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", common.ErrNotFound, kind, id)
}
