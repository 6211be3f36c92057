package text

import (
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashRuns   = regexp.MustCompile(`-+`)
)

// Slugify lowers the text and reduces it to a dash-separated identifier:
// whitespace and underscores become single dashes, everything outside
// [a-z0-9-] is dropped, and dash runs collapse.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
