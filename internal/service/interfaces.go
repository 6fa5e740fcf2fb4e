// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/intake/internal/model"
)

// CategoryStore persists categories and owns category slug uniqueness.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	CreateCategory(ctx context.Context, input model.CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, input model.CategoryInput) error
	DeleteCategory(ctx context.Context, id string) error
}

// SubmissionStore persists submissions and owns submission slug uniqueness.
// Category references are not checked on write; ListSubmissions resolves them
// and leaves Category nil for orphans.
type SubmissionStore interface {
	ListSubmissions(ctx context.Context) ([]model.SubmissionWithCategory, error)
	GetSubmission(ctx context.Context, id string) (*model.Submission, error)
	GetSubmissionBySlug(ctx context.Context, slug string) (*model.Submission, error)
	CreateSubmission(ctx context.Context, input model.SubmissionInput) (*model.Submission, error)
	UpdateSubmission(ctx context.Context, id string, input model.SubmissionInput) error
	DeleteSubmission(ctx context.Context, id string) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	CategoryStore
	SubmissionStore

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
