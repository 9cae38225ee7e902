package calendar

import (
	"testing"
	"time"
)

func TestNearestPicksSmallestGap(t *testing.T) {
	base := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	events := []Event{
		{Title: "far before", Start: base.Add(-3 * time.Hour)},
		{Title: "after", Start: base.Add(20 * time.Minute)},
		{Title: "just before", Start: base.Add(-10 * time.Minute)},
	}
	got := Nearest(events, base, time.Hour)
	if got == nil || got.Title != "just before" {
		t.Fatalf("Nearest = %+v", got)
	}
}

func TestNearestRespectsMaxGap(t *testing.T) {
	base := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	if got := Nearest([]Event{{Title: "x", Start: base.Add(61 * time.Minute)}}, base, time.Hour); got != nil {
		t.Fatalf("expected nil beyond max gap, got %+v", got)
	}
	// The boundary itself still counts.
	if got := Nearest([]Event{{Title: "x", Start: base.Add(time.Hour)}}, base, time.Hour); got == nil {
		t.Fatal("expected match at exactly the max gap")
	}
}

func TestNearestEmpty(t *testing.T) {
	base := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	if got := Nearest(nil, base, time.Hour); got != nil {
		t.Fatalf("expected nil for no events, got %+v", got)
	}
}
