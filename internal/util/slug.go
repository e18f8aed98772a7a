// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe      = regexp.MustCompile(`\s+`)
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	multipleDashRe    = regexp.MustCompile(`-+`)
)

// Slugify converts a tag name to its canonical slug: lowercase, spaces to
// dashes, everything else non-alphanumeric dropped, dashes collapsed. The
// slug is what makes a tag unique within a user's taxonomy.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
