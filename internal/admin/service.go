// Package admin is the boundary the management console talks to. It checks
// field shape before any store call and hands back filtered listings.
package admin

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Veraticus/intake/internal/common"
	"github.com/Veraticus/intake/internal/model"
	"github.com/Veraticus/intake/internal/query"
	"github.com/Veraticus/intake/internal/service"
	"github.com/Veraticus/intake/internal/slug"
)

// Service exposes the list/create/update/delete contract for categories and
// submissions.
type Service struct {
	store    service.Storage
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for form defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service backed by store.
func New(store service.Storage, opts ...Option) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	s := &Service{
		store:    store,
		validate: v,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCategories returns the categories matching search, most recent first.
func (s *Service) ListCategories(ctx context.Context, search string) ([]model.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return query.FilterCategories(categories, search), nil
}

// CreateCategory validates input and creates a category.
func (s *Service) CreateCategory(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.check(input); err != nil {
		return nil, err
	}
	return s.store.CreateCategory(ctx, input)
}

// UpdateCategory validates input and replaces the category's fields.
func (s *Service) UpdateCategory(ctx context.Context, id string, input model.CategoryInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.check(input); err != nil {
		return err
	}
	return s.store.UpdateCategory(ctx, id, input)
}

// DeleteCategory removes a category. Submissions pointing at it become orphans.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.store.DeleteCategory(ctx, id)
}

// ResolveCategory finds a category by id, or by slug when ref is a name or
// slug of an existing category.
func (s *Service) ResolveCategory(ctx context.Context, ref string) (*model.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, common.NewValidationError("category", "is required")
	}

	cat, err := s.store.GetCategory(ctx, ref)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, common.ErrNotFound) && !errors.Is(err, common.ErrValidation) {
		return nil, err
	}

	want := slug.Generate(ref)
	if want == "" {
		return nil, fmt.Errorf("category %q: %w", ref, common.ErrNotFound)
	}
	cat, err = s.store.GetCategoryBySlug(ctx, want)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("category %q: %w", ref, common.ErrNotFound)
	}
	return cat, err
}

// ListSubmissions returns the submissions matching filter, most recent first,
// each joined with its category.
func (s *Service) ListSubmissions(ctx context.Context, filter query.SubmissionFilter) ([]model.SubmissionWithCategory, error) {
	submissions, err := s.store.ListSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return query.FilterSubmissions(submissions, filter), nil
}

// ResolveSubmission finds a submission by id, or by the slug of ref.
func (s *Service) ResolveSubmission(ctx context.Context, ref string) (*model.Submission, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, common.NewValidationError("submission", "is required")
	}

	sub, err := s.store.GetSubmission(ctx, ref)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, common.ErrNotFound) && !errors.Is(err, common.ErrValidation) {
		return nil, err
	}

	want := slug.Generate(ref)
	if want == "" {
		return nil, fmt.Errorf("submission %q: %w", ref, common.ErrNotFound)
	}
	sub, err = s.store.GetSubmissionBySlug(ctx, want)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("submission %q: %w", ref, common.ErrNotFound)
	}
	return sub, err
}

// ToInput returns the editable fields of sub.
func ToInput(sub model.Submission) model.SubmissionInput {
	return model.SubmissionInput{
		Name:         sub.Name,
		CategoryID:   sub.CategoryID,
		Status:       sub.Status,
		OpenDate:     sub.OpenDate,
		CloseDate:    sub.CloseDate,
		AcademicYear: sub.AcademicYear,
		Description:  sub.Description,
		Quota:        sub.Quota,
	}
}

// GetSubmission returns one submission.
func (s *Service) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	return s.store.GetSubmission(ctx, id)
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// CreateSubmission validates input and creates a submission.
func (s *Service) CreateSubmission(ctx context.Context, input model.SubmissionInput) (*model.Submission, error) {
	input = trimSubmission(input)
	if err := s.check(input); err != nil {
		return nil, err
	}
	return s.store.CreateSubmission(ctx, input)
}

// UpdateSubmission validates input and replaces every mutable field.
func (s *Service) UpdateSubmission(ctx context.Context, id string, input model.SubmissionInput) error {
	input = trimSubmission(input)
	if err := s.check(input); err != nil {
		return err
	}
	return s.store.UpdateSubmission(ctx, id, input)
}

// DeleteSubmission removes a submission.
func (s *Service) DeleteSubmission(ctx context.Context, id string) error {
	return s.store.DeleteSubmission(ctx, id)
}

// NewSubmissionInput returns the values a blank submission form starts with.
func (s *Service) NewSubmissionInput() model.SubmissionInput {
	return model.SubmissionInput{
		Status:       model.StatusDraft,
		Quota:        1,
		AcademicYear: strconv.Itoa(s.now().Year()),
	}
}

func trimSubmission(input model.SubmissionInput) model.SubmissionInput {
	input.Name = strings.TrimSpace(input.Name)
	input.CategoryID = strings.TrimSpace(input.CategoryID)
	input.AcademicYear = strings.TrimSpace(input.AcademicYear)
	input.OpenDate = strings.TrimSpace(input.OpenDate)
	input.CloseDate = strings.TrimSpace(input.CloseDate)
	return input
}

// check runs struct validation and converts failures into joined
// ValidationErrors, one per field.
func (s *Service) check(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, common.NewValidationError(fe.Field(), describe(fe)))
	}
	return errors.Join(errs...)
}

func describe(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isText {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
