package classify

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateFormat is the date that prefixes every canonical title.
const DateFormat = "2006-01-02"

var (
	datePrefixRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(?:\s*-\s*|\s+)`)
	dateSuffixRE = regexp.MustCompile(`\s*\(\d{4}-\d{2}-\d{2}\)\s*$`)
)

// StripDate removes an existing date prefix and, for titles written by
// older runs, a trailing "(YYYY-MM-DD)" suffix. Applying it to a
// canonical title yields the bare label, which keeps retitling
// idempotent.
func StripDate(title string) string {
	s := datePrefixRE.ReplaceAllString(strings.TrimSpace(title), "")
	s = dateSuffixRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// CanonicalTitle renders "YYYY-MM-DD - Label" from the decision and the
// video's reference time in the configured zone. An empty label falls
// back to "Untitled" so the result never ends in a dangling separator.
func CanonicalTitle(d Decision, refLocal time.Time) string {
	label := strings.TrimSpace(d.Label)
	if label == "" {
		label = "Untitled"
	}
	return fmt.Sprintf("%s - %s", refLocal.Format(DateFormat), label)
}
