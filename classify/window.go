package classify

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a civil wall-clock value, counted in minutes after midnight.
type ClockTime int

// Clock builds a ClockTime from hour and minute components.
func Clock(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return Clock(t.Hour(), t.Minute()), nil
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// InRange reports whether clock falls in [start, end). A start after the
// end wraps past midnight, so 22:00-02:00 contains 23:30 and 01:00 but
// not 10:00.
func InRange(clock, start, end ClockTime) bool {
	if start > end {
		return clock >= start || clock < end
	}
	return clock >= start && clock < end
}

// Window is a weekly recurring range in the organization's local timezone.
// An empty Days list matches every day.
type Window struct {
	Days  []time.Weekday
	Start ClockTime
	End   ClockTime
}

// Contains reports whether the civil components of t fall inside the
// window. The caller localizes t first; Contains never converts zones.
// The past-midnight tail of a wrapped window counts toward the window's
// opening day, so a Saturday 22:00-02:00 window contains Sunday 01:00.
func (w Window) Contains(t time.Time) bool {
	clock := Clock(t.Hour(), t.Minute())
	if !InRange(clock, w.Start, w.End) {
		return false
	}
	if len(w.Days) == 0 {
		return true
	}
	day := t.Weekday()
	if w.Start > w.End && clock < w.End {
		day = (day + 6) % 7
	}
	for _, d := range w.Days {
		if d == day {
			return true
		}
	}
	return false
}

func inAny(windows []Window, t time.Time) bool {
	for _, w := range windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}
