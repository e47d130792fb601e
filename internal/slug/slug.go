// Package slug turns display text into URL-safe identifiers.
package slug

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	apostrophes = strings.NewReplacer("'", "", "’", "")
	separators  = regexp.MustCompile(`[\s\p{Zs}\p{Pd}_]+`)
	nonWord     = regexp.MustCompile(`[^\w-]+`)
	hyphenRuns  = regexp.MustCompile(`-{2,}`)
)

// dateLayouts are tried in order when UniqueSlug needs a date prefix.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
}

// Slugify converts text to a lowercase, hyphen-separated slug.
// Example: "The Practice of Washing Your Bowls" -> "the-practice-of-washing-your-bowls".
func Slugify(text string) string {
	// Casers carry state and must not be shared across goroutines.
	s := cases.Lower(language.Und).String(text)
	s = strings.TrimSpace(s)
	s = apostrophes.Replace(s)
	s = separators.ReplaceAllString(s, "-")
	s = nonWord.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug returns the slug for title, prefixed with the YYYY-MM-DD form
// of date when the plain slug is already in existing. The prefixed form is
// not checked against existing again.
func UniqueSlug(title, date string, existing []string) string {
	base := Slugify(title)
	if !slices.Contains(existing, base) {
		return base
	}

	prefix := datePrefix(date)
	if prefix == "" {
		return base
	}
	return prefix + "-" + base
}

func datePrefix(date string) string {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.UTC().Format("2006-01-02")
		}
	}
	return Slugify(date)
}
