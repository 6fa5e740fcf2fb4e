package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple words", input: "Jalur Reguler", want: "jalur-reguler"},
		{name: "already a slug", input: "jalur-reguler", want: "jalur-reguler"},
		{name: "surrounding whitespace", input: "  Jalur   Reguler  ", want: "jalur-reguler"},
		{name: "punctuation collapses", input: "Beasiswa: Prestasi & Tahfidz!", want: "beasiswa-prestasi-tahfidz"},
		{name: "underscores and hyphens", input: "gelombang__1 -- 2025", want: "gelombang-1-2025"},
		{name: "slash in academic year", input: "PPDB 2025/2026", want: "ppdb-2025-2026"},
		{name: "diacritics folded", input: "Café Élève", want: "cafe-eleve"},
		{name: "uppercase", input: "SMA NEGERI", want: "sma-negeri"},
		{name: "only punctuation", input: "!!! ---", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "non latin dropped", input: "入学 2025", want: "2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.input))
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	inputs := []string{
		"Jalur Reguler",
		"  Beasiswa: Prestasi & Tahfidz!  ",
		"Café Élève",
		"a--b__c  d",
		"-leading and trailing-",
		"2025/2026",
	}

	for _, input := range inputs {
		once := Generate(input)
		assert.Equal(t, once, Generate(once), "slug of slug should be unchanged for %q", input)
	}
}

func TestGenerate_WhitespaceOnlyEditsKeepSlug(t *testing.T) {
	assert.Equal(t, Generate("Jalur Reguler"), Generate("Jalur  Reguler "))
	assert.Equal(t, Generate("Jalur Reguler"), Generate("\tJalur\nReguler"))
}
