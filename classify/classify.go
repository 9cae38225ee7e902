package classify

import (
	"strings"
	"time"

	"automaton/model"
)

// Source identifies which stage of the decision order produced a match.
type Source int

const (
	SourceNone Source = iota
	SourceEvent
	SourceCalendar
	SourceKeyword
)

func (s Source) String() string {
	switch s {
	case SourceEvent:
		return "event"
	case SourceCalendar:
		return "calendar"
	case SourceKeyword:
		return "keyword"
	default:
		return "none"
	}
}

// Decision is the engine's verdict for one video.
type Decision struct {
	Category model.Category
	// Label is the descriptive suffix of the canonical title: the rule
	// name (plus service label) for event matches, the scheduled event
	// title for calendar matches, and the date-stripped original title
	// for keyword matches and unclassified videos.
	Label  string
	Source Source
	// Rule names the matching table row, for logs only.
	Rule string
}

// CalendarHint carries the scheduled event nearest to the video's
// creation time, when the events calendar is configured and one matched.
type CalendarHint struct {
	Title string
	Start time.Time
}

// Classify runs the decision order over the video's reference time (its
// creation time localized to the configured zone): broadcast-event rows
// first, then the calendar hint, then title-keyword rows. First match
// wins; later stages are fallbacks, never combined.
func (rs *Ruleset) Classify(v model.VideoRecord, hint *CalendarHint) Decision {
	local := v.CreatedAt.In(rs.Zone)
	stripped := StripDate(v.Title)

	if v.LiveEvent != "" {
		for _, r := range rs.Rules {
			if r.Event == "" || r.Event != v.LiveEvent {
				continue
			}
			if len(r.Windows) > 0 && !inAny(r.Windows, local) {
				continue
			}
			label := r.Name
			if sl := serviceLabel(r.Services, local); sl != "" {
				label += " " + sl
			}
			return Decision{Category: r.Category, Label: label, Source: SourceEvent, Rule: r.Name}
		}
	}

	if hint != nil {
		if cat, rule := rs.keywordCategory(hint.Title); cat != model.CategoryNone {
			return Decision{Category: cat, Label: strings.TrimSpace(hint.Title), Source: SourceCalendar, Rule: rule}
		}
	}

	for _, r := range rs.Rules {
		if r.Event != "" {
			continue
		}
		if len(r.Keywords) > 0 && !containsAny(stripped, r.Keywords) {
			continue
		}
		if len(r.Windows) > 0 && !inAny(r.Windows, local) {
			if r.Outside == model.CategoryNone {
				continue
			}
			return Decision{Category: r.Outside, Label: stripped, Source: SourceKeyword, Rule: r.Name}
		}
		return Decision{Category: r.Category, Label: stripped, Source: SourceKeyword, Rule: r.Name}
	}

	return Decision{Label: stripped, Source: SourceNone}
}

// keywordCategory classifies a scheduled event by its title alone. The
// event's start time is authoritative, so time windows and vetoes do not
// apply here.
func (rs *Ruleset) keywordCategory(title string) (model.Category, string) {
	for _, r := range rs.Rules {
		if r.Event != "" || len(r.Keywords) == 0 {
			continue
		}
		if containsAny(title, r.Keywords) {
			return r.Category, r.Name
		}
	}
	return model.CategoryNone, ""
}
