// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Store errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateSlug = errors.New("slug already in use")
	ErrValidation    = errors.New("validation failed")
)

// Configuration errors.
var (
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError describes one malformed or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match any field error.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a field validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors collects every field error contained in err.
func ValidationErrors(err error) []*ValidationError {
	var out []*ValidationError
	collectValidationErrors(err, &out)
	return out
}

func collectValidationErrors(err error, out *[]*ValidationError) {
	if err == nil {
		return
	}
	if ve, ok := err.(*ValidationError); ok {
		*out = append(*out, ve)
		return
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			collectValidationErrors(inner, out)
		}
	case interface{ Unwrap() error }:
		collectValidationErrors(u.Unwrap(), out)
	}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage turns a store or validation error into a notice for the console.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	switch {
	case errors.Is(err, ErrDuplicateSlug):
		return "That name produces a slug that is already in use; choose another name."
	case errors.Is(err, ErrNotFound):
		return "The record no longer exists; refresh the list."
	case errors.Is(err, ErrValidation):
		fields := ValidationErrors(err)
		if len(fields) == 0 {
			return "Some fields are invalid."
		}
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			msgs = append(msgs, f.Error())
		}
		return "Invalid input: " + strings.Join(msgs, "; ")
	default:
		return "Something went wrong: " + err.Error()
	}
}
