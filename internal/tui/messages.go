package tui

import "github.com/Veraticus/intake/internal/model"

// Data loading messages.
type categoriesLoadedMsg struct {
	err        error
	categories []model.Category
}

type submissionsLoadedMsg struct {
	err         error
	submissions []model.SubmissionWithCategory
}

// mutationDoneMsg reports the outcome of a create, update or delete.
type mutationDoneMsg struct {
	err     error
	success string
}
