// Package query narrows store listings for display.
//
// Filters are pure: they never reorder or mutate their input, and the
// returned slice is always non-nil.
package query

import (
	"strings"

	"github.com/Veraticus/intake/internal/model"
)

// SubmissionFilter narrows a submission listing.
type SubmissionFilter struct {
	Search     string
	ActiveOnly bool
}

// MatchesSearch reports whether search occurs in name, or in description
// when one is set, ignoring case. An empty search matches everything.
func MatchesSearch(name, description, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(name), needle) {
		return true
	}
	return description != "" && strings.Contains(strings.ToLower(description), needle)
}

// FilterCategories returns the categories matching search, in input order.
func FilterCategories(categories []model.Category, search string) []model.Category {
	filtered := make([]model.Category, 0, len(categories))
	for _, cat := range categories {
		if MatchesSearch(cat.Name, cat.Description, search) {
			filtered = append(filtered, cat)
		}
	}
	return filtered
}

// FilterSubmissions returns the submissions matching filter, in input order.
// With ActiveOnly set, only open submissions pass.
func FilterSubmissions(submissions []model.SubmissionWithCategory, filter SubmissionFilter) []model.SubmissionWithCategory {
	filtered := make([]model.SubmissionWithCategory, 0, len(submissions))
	for _, sub := range submissions {
		if filter.ActiveOnly && sub.Status != model.StatusOpen {
			continue
		}
		if MatchesSearch(sub.Name, sub.Description, filter.Search) {
			filtered = append(filtered, sub)
		}
	}
	return filtered
}
