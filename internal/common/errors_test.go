package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_IsErrValidation(t *testing.T) {
	err := NewValidationError("quota", "must be at least 1")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "quota: must be at least 1", err.Error())

	wrapped := fmt.Errorf("failed to create submission: %w", err)
	assert.ErrorIs(t, wrapped, ErrValidation)

	var ve *ValidationError
	require.ErrorAs(t, wrapped, &ve)
	assert.Equal(t, "quota", ve.Field)
}

func TestValidationErrors_CollectsJoined(t *testing.T) {
	joined := errors.Join(
		NewValidationError("name", "must be at least 2 characters"),
		NewValidationError("academicYear", "must be at least 4 characters"),
	)
	wrapped := fmt.Errorf("invalid submission: %w", joined)

	fields := ValidationErrors(wrapped)
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, "academicYear", fields[1].Field)
	assert.ErrorIs(t, wrapped, ErrValidation)

	assert.Empty(t, ValidationErrors(ErrNotFound))
	assert.Empty(t, ValidationErrors(nil))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		contains string
	}{
		{name: "nil", err: nil, contains: ""},
		{name: "duplicate", err: fmt.Errorf("create: %w", ErrDuplicateSlug), contains: "already in use"},
		{name: "not found", err: fmt.Errorf("update: %w", ErrNotFound), contains: "no longer exists"},
		{name: "validation", err: errors.Join(NewValidationError("quota", "must be at least 1")), contains: "quota: must be at least 1"},
		{name: "user error", err: NewUserError("Pick a category first", ErrValidation), contains: "Pick a category first"},
		{name: "other", err: errors.New("disk full"), contains: "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := UserMessage(tt.err)
			if tt.contains == "" {
				assert.Empty(t, msg)
				return
			}
			assert.Contains(t, msg, tt.contains)
		})
	}
}
