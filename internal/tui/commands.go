package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/intake/internal/common"
	"github.com/Veraticus/intake/internal/model"
	"github.com/Veraticus/intake/internal/query"
	"github.com/Veraticus/intake/internal/tui/components"
)

const storeTimeout = 10 * time.Second

func (m Model) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, storeTimeout)
}

// loadCategories fetches the full category listing; filtering happens in the view.
func (m Model) loadCategories() tea.Cmd {
	return func() tea.Msg {
		if m.svc == nil {
			return categoriesLoadedMsg{err: fmt.Errorf("service not configured")}
		}

		ctx, cancel := m.storeContext()
		defer cancel()

		categories, err := m.svc.ListCategories(ctx, "")
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

// loadSubmissions fetches the full submission listing.
func (m Model) loadSubmissions() tea.Cmd {
	return func() tea.Msg {
		if m.svc == nil {
			return submissionsLoadedMsg{err: fmt.Errorf("service not configured")}
		}

		ctx, cancel := m.storeContext()
		defer cancel()

		submissions, err := m.svc.ListSubmissions(ctx, query.SubmissionFilter{})
		return submissionsLoadedMsg{submissions: submissions, err: err}
	}
}

func (m Model) reload() tea.Cmd {
	return tea.Batch(m.loadCategories(), m.loadSubmissions())
}

func (m Model) saveCategory(id string, input model.CategoryInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.storeContext()
		defer cancel()

		if id == "" {
			cat, err := m.svc.CreateCategory(ctx, input)
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{success: fmt.Sprintf("Created category %q", cat.Name)}
		}
		if err := m.svc.UpdateCategory(ctx, id, input); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{success: fmt.Sprintf("Updated category %q", strings.TrimSpace(input.Name))}
	}
}

func (m Model) saveSubmission(id string, input model.SubmissionInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.storeContext()
		defer cancel()

		if id == "" {
			sub, err := m.svc.CreateSubmission(ctx, input)
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{success: fmt.Sprintf("Created submission %q", sub.Name)}
		}
		if err := m.svc.UpdateSubmission(ctx, id, input); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{success: fmt.Sprintf("Updated submission %q", strings.TrimSpace(input.Name))}
	}
}

func (m Model) deleteRecord(tab Tab, id, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.storeContext()
		defer cancel()

		var err error
		kind := "category"
		if tab == TabSubmissions {
			kind = "submission"
			err = m.svc.DeleteSubmission(ctx, id)
		} else {
			err = m.svc.DeleteCategory(ctx, id)
		}
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{success: fmt.Sprintf("Deleted %s %q", kind, name)}
	}
}

// Form field keys.
const (
	fieldName         = "name"
	fieldDescription  = "description"
	fieldCategory     = "category"
	fieldStatus       = "status"
	fieldQuota        = "quota"
	fieldAcademicYear = "academic_year"
	fieldOpenDate     = "open_date"
	fieldCloseDate    = "close_date"
)

func categoryFromForm(f components.FormModel) model.CategoryInput {
	return model.CategoryInput{
		Name:        f.Value(fieldName),
		Description: f.Value(fieldDescription),
	}
}

func submissionFromForm(f components.FormModel) (model.SubmissionInput, error) {
	input := model.SubmissionInput{
		Name:         f.Value(fieldName),
		CategoryID:   f.Value(fieldCategory),
		Status:       model.SubmissionStatus(f.Value(fieldStatus)),
		AcademicYear: f.Value(fieldAcademicYear),
		OpenDate:     f.Value(fieldOpenDate),
		CloseDate:    f.Value(fieldCloseDate),
		Description:  f.Value(fieldDescription),
	}

	quota, err := strconv.Atoi(strings.TrimSpace(f.Value(fieldQuota)))
	if err != nil {
		return input, common.NewValidationError(fieldQuota, "must be a whole number")
	}
	input.Quota = quota
	return input, nil
}
