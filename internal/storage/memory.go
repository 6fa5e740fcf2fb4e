package storage

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/intake/internal/model"
	"github.com/google/uuid"
)

// MemoryStorage is a process-local Storage. Each namespace has its own lock
// guarding both the slug index and the records, so a slug check and the write
// that depends on it happen under one critical section.
type MemoryStorage struct {
	now func() time.Time

	catMu        sync.RWMutex
	categories   map[string]model.Category
	categoryIDs  []string // creation order
	categorySlug map[string]string

	subMu          sync.RWMutex
	submissions    map[string]model.Submission
	submissionIDs  []string // creation order
	submissionSlug map[string]string
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		now:            func() time.Time { return time.Now().UTC() },
		categories:     make(map[string]model.Category),
		categorySlug:   make(map[string]string),
		submissions:    make(map[string]model.Submission),
		submissionSlug: make(map[string]string),
	}
}

// Migrate is a no-op; the memory store has no schema.
func (m *MemoryStorage) Migrate(ctx context.Context) error {
	return validateContext(ctx)
}

// Close is a no-op.
func (m *MemoryStorage) Close() error {
	return nil
}

// ListCategories returns all categories, most recently created first.
func (m *MemoryStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.catMu.RLock()
	defer m.catMu.RUnlock()

	categories := make([]model.Category, 0, len(m.categoryIDs))
	for i := len(m.categoryIDs) - 1; i >= 0; i-- {
		categories = append(categories, m.categories[m.categoryIDs[i]])
	}
	return categories, nil
}

// GetCategory returns the category with the given id.
func (m *MemoryStorage) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	m.catMu.RLock()
	defer m.catMu.RUnlock()

	cat, ok := m.categories[id]
	if !ok {
		return nil, notFound("category", id)
	}
	return &cat, nil
}

// GetCategoryBySlug returns the category holding slug.
func (m *MemoryStorage) GetCategoryBySlug(ctx context.Context, want string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(want, "slug"); err != nil {
		return nil, err
	}

	m.catMu.RLock()
	defer m.catMu.RUnlock()

	id, ok := m.categorySlug[want]
	if !ok {
		return nil, notFound("category", want)
	}
	cat := m.categories[id]
	return &cat, nil
}

// CreateCategory creates a new category whose slug is derived from its name.
func (m *MemoryStorage) CreateCategory(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	input, categorySlug, err := normalizeCategory(input)
	if err != nil {
		return nil, err
	}

	m.catMu.Lock()
	defer m.catMu.Unlock()

	if _, taken := m.categorySlug[categorySlug]; taken {
		return nil, duplicateSlug("category", categorySlug)
	}

	now := m.now()
	cat := model.Category{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Slug:        categorySlug,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.categories[cat.ID] = cat
	m.categoryIDs = append(m.categoryIDs, cat.ID)
	m.categorySlug[categorySlug] = cat.ID

	slog.Info("created category", "id", cat.ID, "slug", cat.Slug)
	return &cat, nil
}

// UpdateCategory overwrites a category's name and description and regenerates its slug.
func (m *MemoryStorage) UpdateCategory(ctx context.Context, id string, input model.CategoryInput) error {
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

	m.catMu.Lock()
	defer m.catMu.Unlock()

	cat, ok := m.categories[id]
	if !ok {
		return notFound("category", id)
	}
	if owner, taken := m.categorySlug[categorySlug]; taken && owner != id {
		return duplicateSlug("category", categorySlug)
	}

	delete(m.categorySlug, cat.Slug)
	cat.Name = input.Name
	cat.Slug = categorySlug
	cat.Description = input.Description
	cat.UpdatedAt = m.now()
	m.categories[id] = cat
	m.categorySlug[categorySlug] = id

	slog.Info("updated category", "id", id, "slug", categorySlug)
	return nil
}

// DeleteCategory removes a category. Submissions referencing it are left untouched.
func (m *MemoryStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	m.catMu.Lock()
	defer m.catMu.Unlock()

	cat, ok := m.categories[id]
	if !ok {
		return notFound("category", id)
	}
	delete(m.categories, id)
	delete(m.categorySlug, cat.Slug)
	m.categoryIDs = slices.DeleteFunc(m.categoryIDs, func(v string) bool { return v == id })

	slog.Info("deleted category", "id", id)
	return nil
}

// ListSubmissions returns all submissions, most recently created first, each
// joined with its category. Orphaned references yield a nil Category.
func (m *MemoryStorage) ListSubmissions(ctx context.Context) ([]model.SubmissionWithCategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.subMu.RLock()
	defer m.subMu.RUnlock()
	m.catMu.RLock()
	defer m.catMu.RUnlock()

	submissions := make([]model.SubmissionWithCategory, 0, len(m.submissionIDs))
	for i := len(m.submissionIDs) - 1; i >= 0; i-- {
		sub := m.submissions[m.submissionIDs[i]]
		item := model.SubmissionWithCategory{Submission: sub}
		if cat, ok := m.categories[sub.CategoryID]; ok {
			item.Category = &cat
		}
		submissions = append(submissions, item)
	}
	return submissions, nil
}

// GetSubmission returns the submission with the given id.
func (m *MemoryStorage) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	m.subMu.RLock()
	defer m.subMu.RUnlock()

	sub, ok := m.submissions[id]
	if !ok {
		return nil, notFound("submission", id)
	}
	return &sub, nil
}

// GetSubmissionBySlug returns the submission holding slug.
func (m *MemoryStorage) GetSubmissionBySlug(ctx context.Context, want string) (*model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(want, "slug"); err != nil {
		return nil, err
	}

	m.subMu.RLock()
	defer m.subMu.RUnlock()

	id, ok := m.submissionSlug[want]
	if !ok {
		return nil, notFound("submission", want)
	}
	sub := m.submissions[id]
	return &sub, nil
}

// CreateSubmission creates a new submission. Its slug only has to be unique
// among submissions; the category reference is stored without checking.
func (m *MemoryStorage) CreateSubmission(ctx context.Context, input model.SubmissionInput) (*model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	input, submissionSlug, err := normalizeSubmission(input)
	if err != nil {
		return nil, err
	}

	m.subMu.Lock()
	defer m.subMu.Unlock()

	if _, taken := m.submissionSlug[submissionSlug]; taken {
		return nil, duplicateSlug("submission", submissionSlug)
	}

	now := m.now()
	sub := model.Submission{
		ID:        uuid.NewString(),
		Slug:      submissionSlug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applySubmissionInput(&sub, input)
	m.submissions[sub.ID] = sub
	m.submissionIDs = append(m.submissionIDs, sub.ID)
	m.submissionSlug[submissionSlug] = sub.ID

	slog.Info("created submission",
		"id", sub.ID,
		"slug", sub.Slug,
		"category_id", sub.CategoryID,
		"status", sub.Status)
	return &sub, nil
}

// UpdateSubmission overwrites every mutable field of a submission and
// regenerates its slug.
func (m *MemoryStorage) UpdateSubmission(ctx context.Context, id string, input model.SubmissionInput) error {
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

	m.subMu.Lock()
	defer m.subMu.Unlock()

	sub, ok := m.submissions[id]
	if !ok {
		return notFound("submission", id)
	}
	if owner, taken := m.submissionSlug[submissionSlug]; taken && owner != id {
		return duplicateSlug("submission", submissionSlug)
	}

	delete(m.submissionSlug, sub.Slug)
	applySubmissionInput(&sub, input)
	sub.Slug = submissionSlug
	sub.UpdatedAt = m.now()
	m.submissions[id] = sub
	m.submissionSlug[submissionSlug] = id

	slog.Info("updated submission", "id", id, "slug", submissionSlug, "status", input.Status)
	return nil
}

// DeleteSubmission removes a submission.
func (m *MemoryStorage) DeleteSubmission(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	m.subMu.Lock()
	defer m.subMu.Unlock()

	sub, ok := m.submissions[id]
	if !ok {
		return notFound("submission", id)
	}
	delete(m.submissions, id)
	delete(m.submissionSlug, sub.Slug)
	m.submissionIDs = slices.DeleteFunc(m.submissionIDs, func(v string) bool { return v == id })

	slog.Info("deleted submission", "id", id)
	return nil
}

func applySubmissionInput(sub *model.Submission, input model.SubmissionInput) {
	sub.Name = input.Name
	sub.CategoryID = input.CategoryID
	sub.Status = input.Status
	sub.OpenDate = input.OpenDate
	sub.CloseDate = input.CloseDate
	sub.Quota = input.Quota
	sub.AcademicYear = input.AcademicYear
	sub.Description = input.Description
}
