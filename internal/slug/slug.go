// Package slug derives URL-safe identifiers from article titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Punctuation stripped from titles before slugging.
const stripped = `*+~.()'"!:@`

var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Derive turns a title into its slug: lower-cased, diacritics folded away,
// the punctuation set stripped, whitespace collapsed to single hyphens.
// Derive("Wash the Sins!") == "wash-the-sins".
func Derive(title string) string {
	folded, _, err := transform.String(foldDiacritics, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if strings.ContainsRune(stripped, r) {
			continue
		}
		if unicode.IsSpace(r) {
			b.WriteRune('-')
			continue
		}
		b.WriteRune(r)
	}

	// collapse runs of hyphens left by stripped words or double spaces
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}
