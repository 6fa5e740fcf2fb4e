package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/intake/internal/model"
)

func submissionsFixture() []model.SubmissionWithCategory {
	reguler := &model.Category{ID: "cat-1", Name: "Reguler"}
	sub := func(id, name, description string, status model.SubmissionStatus) model.SubmissionWithCategory {
		return model.SubmissionWithCategory{
			Category: reguler,
			Submission: model.Submission{
				ID:          id,
				Name:        name,
				Description: description,
				Status:      status,
				CategoryID:  reguler.ID,
				Quota:       10,
			},
		}
	}
	return []model.SubmissionWithCategory{
		sub("s1", "Gelombang Satu", "", model.StatusDraft),
		sub("s2", "Gelombang Dua", "Beasiswa Prestasi", model.StatusOpen),
		sub("s3", "Jalur Mandiri", "", model.StatusClosed),
		sub("s4", "Jalur Prestasi", "Untuk siswa berprestasi", model.StatusOpen),
	}
}

func ids(list []model.SubmissionWithCategory) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}

func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		name        string
		itemName    string
		description string
		search      string
		want        bool
	}{
		{"empty search matches", "Anything", "", "", true},
		{"name substring", "Jalur Reguler", "", "reg", true},
		{"case insensitive", "jalur reguler", "", "REGULER", true},
		{"description match", "Gelombang", "khusus Prestasi", "prestasi", true},
		{"no match", "Gelombang", "Satu", "dua", false},
		{"empty description never matches", "Gelombang", "", "x", false},
		{"whitespace is literal", "Jalur Reguler", "", " reguler", true},
		{"leading whitespace not trimmed", "Reguler", "", " reguler", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSearch(tt.itemName, tt.description, tt.search))
		})
	}
}

func TestFilterSubmissions_Cardinality(t *testing.T) {
	list := submissionsFixture()

	assert.Len(t, FilterSubmissions(list, SubmissionFilter{}), 4)
	assert.Len(t, FilterSubmissions(list, SubmissionFilter{ActiveOnly: true}), 2)
	assert.Equal(t, []string{"s2", "s4"}, ids(FilterSubmissions(list, SubmissionFilter{ActiveOnly: true})))
}

func TestFilterSubmissions_SearchAndActive(t *testing.T) {
	list := submissionsFixture()

	got := FilterSubmissions(list, SubmissionFilter{Search: "prestasi"})
	assert.Equal(t, []string{"s2", "s4"}, ids(got))

	got = FilterSubmissions(list, SubmissionFilter{Search: "jalur"})
	assert.Equal(t, []string{"s3", "s4"}, ids(got))

	got = FilterSubmissions(list, SubmissionFilter{Search: "jalur", ActiveOnly: true})
	assert.Equal(t, []string{"s4"}, ids(got))
}

func TestFilterSubmissions_PreservesInput(t *testing.T) {
	list := submissionsFixture()
	before := ids(list)

	got := FilterSubmissions(list, SubmissionFilter{Search: "gelombang", ActiveOnly: true})
	require.Len(t, got, 1)
	got[0].Name = "mutated"

	assert.Equal(t, before, ids(list))
	assert.Equal(t, "Gelombang Dua", list[1].Name)
}

func TestFilterSubmissions_EmptyInput(t *testing.T) {
	got := FilterSubmissions(nil, SubmissionFilter{Search: "x"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterSubmissions_OrphansFilterLikeAnyOther(t *testing.T) {
	list := submissionsFixture()
	list[1].Category = nil

	got := FilterSubmissions(list, SubmissionFilter{ActiveOnly: true})
	assert.Equal(t, []string{"s2", "s4"}, ids(got))
}

func TestFilterCategories(t *testing.T) {
	categories := []model.Category{
		{ID: "c3", Name: "Afirmasi", Description: "Untuk keluarga prasejahtera"},
		{ID: "c2", Name: "Prestasi"},
		{ID: "c1", Name: "Reguler", Description: "Jalur umum"},
	}

	got := FilterCategories(categories, "")
	assert.Len(t, got, 3)

	got = FilterCategories(categories, "UM")
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)

	got = FilterCategories(categories, "a")
	require.Len(t, got, 3)
	assert.Equal(t, "c3", got[0].ID)
	assert.Equal(t, "c1", got[2].ID)

	assert.Empty(t, FilterCategories(categories, "zzz"))
}
