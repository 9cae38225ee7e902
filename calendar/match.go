package calendar

import "time"

// Nearest returns the event whose start is closest to t, or nil when no
// event is within maxGap of it.
func Nearest(events []Event, t time.Time, maxGap time.Duration) *Event {
	var best *Event
	var bestGap time.Duration
	for i := range events {
		gap := events[i].Start.Sub(t)
		if gap < 0 {
			gap = -gap
		}
		if gap > maxGap {
			continue
		}
		if best == nil || gap < bestGap {
			best = &events[i]
			bestGap = gap
		}
	}
	return best
}
