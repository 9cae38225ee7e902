package classify

import (
	"fmt"
	"strings"
	"time"

	"automaton/model"
)

// Rule is one row of the classification table. Rows are matched in order,
// first hit wins. A row can key on the linked broadcast event, on title
// keywords, or on nothing but time windows; whichever fields are set must
// all hold for the row to match.
type Rule struct {
	// Name is the canonical descriptive title for videos matched through
	// their broadcast event. Keyword matches keep their own title instead.
	Name     string
	Category model.Category

	// Event matches videos linked to this broadcast session ID.
	Event model.LiveEventID

	// Keywords match when the date-stripped title contains any of them,
	// case-insensitively.
	Keywords []string

	// Windows, when set, require the video's reference time to fall in
	// one of them.
	Windows []Window

	// Outside reroutes a keyword match whose reference time missed every
	// window to another category instead of failing the row. A video
	// titled from a worship broadcast template but recorded at an odd
	// hour is really a memorial or wedding reusing the same preset.
	Outside model.Category

	// Services disambiguates same-day repeat services by reference hour;
	// the first entry whose Before is 0 or above the hour supplies a
	// label appended to Name.
	Services []ServiceTime
}

// ServiceTime labels one service slot of a repeating event. Before is the
// exclusive upper hour bound; 0 matches any hour.
type ServiceTime struct {
	Label  string
	Before int
}

// Ruleset is the immutable classification input: the ordered rule table,
// the category to destination-folder mapping, the excluded folders, and
// the organization's operating timezone. Built once at startup and passed
// in, never mutated afterwards.
type Ruleset struct {
	Rules    []Rule
	Folders  map[model.Category]model.FolderID
	Excluded []model.FolderID
	Zone     *time.Location
}

// IsExcluded reports whether a folder is on the never-touch list.
func (rs *Ruleset) IsExcluded(f model.FolderID) bool {
	for _, id := range rs.Excluded {
		if id == f {
			return true
		}
	}
	return false
}

// Validate rejects tables that could never classify anything sensibly.
func (rs *Ruleset) Validate() error {
	if rs.Zone == nil {
		return fmt.Errorf("ruleset: timezone not set")
	}
	for i, r := range rs.Rules {
		matchable := r.Event != "" || len(r.Keywords) > 0 || len(r.Windows) > 0
		if !matchable {
			return fmt.Errorf("ruleset: rule %d (%q) matches nothing", i, r.Name)
		}
		if r.Category == model.CategoryNone {
			return fmt.Errorf("ruleset: rule %d (%q) has no category", i, r.Name)
		}
	}
	return nil
}

func containsAny(title string, keywords []string) bool {
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func serviceLabel(services []ServiceTime, local time.Time) string {
	for _, s := range services {
		if s.Before == 0 || local.Hour() < s.Before {
			return s.Label
		}
	}
	return ""
}
