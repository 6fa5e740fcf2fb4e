package model

import "time"

// SubmissionStatus is the publication state of a submission.
type SubmissionStatus string

const (
	// StatusDraft marks a submission that is not yet visible to applicants.
	StatusDraft SubmissionStatus = "draft"
	// StatusOpen marks a submission that is accepting applicants.
	StatusOpen SubmissionStatus = "open"
	// StatusClosed marks a submission that no longer accepts applicants.
	StatusClosed SubmissionStatus = "closed"
)

// AllStatuses returns every status in display order.
func AllStatuses() []SubmissionStatus {
	return []SubmissionStatus{StatusDraft, StatusOpen, StatusClosed}
}

// IsValid reports whether s is one of the known statuses.
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusClosed:
		return true
	}
	return false
}

// Label returns the badge text shown for the status.
func (s SubmissionStatus) Label() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusClosed:
		return "Closed"
	default:
		return "Draft"
	}
}

// Submission is a time-bounded admission intake belonging to a category.
// CategoryID is a plain reference; the category may have been deleted since.
type Submission struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ID           string
	Name         string
	Slug         string
	CategoryID   string
	Status       SubmissionStatus
	OpenDate     string
	CloseDate    string
	AcademicYear string
	Description  string
	Quota        int
}

// SubmissionWithCategory is a listed submission joined with its category.
// Category is nil when the referenced category no longer exists.
type SubmissionWithCategory struct {
	Category *Category
	Submission
}

// CategoryName returns the joined category's name, or fallback when the
// reference is orphaned.
func (s SubmissionWithCategory) CategoryName(fallback string) string {
	if s.Category == nil {
		return fallback
	}
	return s.Category.Name
}

// SubmissionInput holds the user-editable fields of a submission.
type SubmissionInput struct {
	Name         string           `json:"name" validate:"required,min=2"`
	CategoryID   string           `json:"category" validate:"required"`
	Status       SubmissionStatus `json:"status" validate:"required,oneof=draft open closed"`
	OpenDate     string           `json:"open_date"`
	CloseDate    string           `json:"close_date"`
	AcademicYear string           `json:"academic_year" validate:"min=4"`
	Description  string           `json:"description" validate:"max=1000"`
	Quota        int              `json:"quota" validate:"min=1"`
}
