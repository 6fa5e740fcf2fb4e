package query

import "github.com/Veraticus/intake/internal/model"

// CategoryView caches a filtered category listing. The result is recomputed
// only after the source or the search text changes.
type CategoryView struct {
	source   []model.Category
	result   []model.Category
	search   string
	computes int
	dirty    bool
}

// NewCategoryView returns a view over source with no search applied.
func NewCategoryView(source []model.Category) *CategoryView {
	return &CategoryView{source: source, dirty: true}
}

// SetSource replaces the underlying listing, typically after a reload.
func (v *CategoryView) SetSource(source []model.Category) {
	v.source = source
	v.dirty = true
}

// SetSearch changes the search text. Setting the current text is a no-op.
func (v *CategoryView) SetSearch(search string) {
	if search == v.search {
		return
	}
	v.search = search
	v.dirty = true
}

// Search returns the active search text.
func (v *CategoryView) Search() string { return v.search }

// Items returns the filtered listing. Callers must not modify it.
func (v *CategoryView) Items() []model.Category {
	if v.dirty {
		v.result = FilterCategories(v.source, v.search)
		v.computes++
		v.dirty = false
	}
	return v.result
}

// Total returns the size of the unfiltered listing.
func (v *CategoryView) Total() int { return len(v.source) }

// Computes returns how many times the filter has run.
func (v *CategoryView) Computes() int { return v.computes }

// SubmissionView caches a filtered submission listing. The result is
// recomputed only after the source, the search text or the active-only
// toggle changes.
type SubmissionView struct {
	source   []model.SubmissionWithCategory
	result   []model.SubmissionWithCategory
	filter   SubmissionFilter
	computes int
	dirty    bool
}

// NewSubmissionView returns a view over source with no filter applied.
func NewSubmissionView(source []model.SubmissionWithCategory) *SubmissionView {
	return &SubmissionView{source: source, dirty: true}
}

// SetSource replaces the underlying listing, typically after a reload.
func (v *SubmissionView) SetSource(source []model.SubmissionWithCategory) {
	v.source = source
	v.dirty = true
}

// SetSearch changes the search text. Setting the current text is a no-op.
func (v *SubmissionView) SetSearch(search string) {
	if search == v.filter.Search {
		return
	}
	v.filter.Search = search
	v.dirty = true
}

// SetActiveOnly changes the active-only toggle.
func (v *SubmissionView) SetActiveOnly(activeOnly bool) {
	if activeOnly == v.filter.ActiveOnly {
		return
	}
	v.filter.ActiveOnly = activeOnly
	v.dirty = true
}

// Filter returns the active filter.
func (v *SubmissionView) Filter() SubmissionFilter { return v.filter }

// Items returns the filtered listing. Callers must not modify it.
func (v *SubmissionView) Items() []model.SubmissionWithCategory {
	if v.dirty {
		v.result = FilterSubmissions(v.source, v.filter)
		v.computes++
		v.dirty = false
	}
	return v.result
}

// Total returns the size of the unfiltered listing.
func (v *SubmissionView) Total() int { return len(v.source) }

// Computes returns how many times the filter has run.
func (v *SubmissionView) Computes() int { return v.computes }
