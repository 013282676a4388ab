package listing

import (
	"regexp"
	"strings"
	"time"
)

var markupTags = regexp.MustCompile(`<[^>]*>`)

// Label turns a raw slug into its human-readable listing label: hyphens
// become spaces and any markup that slipped into the stored value is
// stripped rather than rendered.
func Label(slug string) string {
	label := markupTags.ReplaceAllString(slug, "")
	label = strings.ReplaceAll(label, "-", " ")
	return strings.TrimSpace(label)
}

// FormatDate renders a creation date the way the public listing displays it.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
