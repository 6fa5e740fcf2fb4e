// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Generate returns the normalized slug for name.
//
// Diacritics are folded to their base letters, the result is lowercased, and
// every run of characters other than ASCII letters and digits collapses into a
// single hyphen. Leading and trailing hyphens are dropped. The output is stable
// under repeated application, so Generate(Generate(s)) == Generate(s).
// A name with no letters or digits yields the empty string.
func Generate(name string) string {
	folded, _, err := transform.String(foldDiacritics(), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))

	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// foldDiacritics builds a fresh transformer per call; transform chains carry
// state and are not safe for concurrent use.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
