package classify

import (
	"testing"
	"time"

	"automaton/model"
)

func testRuleset(t *testing.T) *Ruleset {
	t.Helper()
	zone, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	rs := &Ruleset{
		Rules: []Rule{
			{
				Name:     "Worship Service - Traditional",
				Category: model.CategoryWorship,
				Event:    "3261302",
				Windows:  []Window{{Start: Clock(9, 20), End: Clock(12, 0)}},
				Services: []ServiceTime{{Label: "9:30 AM", Before: 11}, {Label: "11:00 AM"}},
			},
			{
				Name:     "Memorials at St. Andrew",
				Category: model.CategoryWeddings,
				Event:    "4972294",
			},
			{
				Name:     "worship keywords",
				Category: model.CategoryWorship,
				Keywords: []string{"worship", "traditional", "contemporary"},
				Windows: []Window{
					{Days: []time.Weekday{time.Saturday}, Start: Clock(18, 30), End: Clock(20, 0)},
					{Days: []time.Weekday{time.Sunday}, Start: Clock(10, 0), End: Clock(14, 0)},
				},
				Outside: model.CategoryWeddings,
			},
			{
				Name:     "memorial keywords",
				Category: model.CategoryWeddings,
				Keywords: []string{"memorial", "wedding"},
			},
			{
				Name:     "class keywords",
				Category: model.CategoryClasses,
				Keywords: []string{"class", "scott"},
			},
		},
		Folders: map[model.Category]model.FolderID{
			model.CategoryWorship:  "15749517",
			model.CategoryWeddings: "2478125",
			model.CategoryClasses:  "15680946",
		},
		Excluded: []model.FolderID{"11103430", "182762", "8219992"},
		Zone:     zone,
	}
	if err := rs.Validate(); err != nil {
		t.Fatalf("validate ruleset: %v", err)
	}
	return rs
}

func TestClassifySundayMorningBroadcast(t *testing.T) {
	rs := testRuleset(t)
	// 15:15 UTC on 2024-03-10 is 10:15 in Chicago, first service slot.
	v := model.VideoRecord{
		ID:        "901",
		Title:     "streamed live",
		CreatedAt: time.Date(2024, 3, 10, 15, 15, 0, 0, time.UTC),
		LiveEvent: "3261302",
		Playable:  true,
	}

	d := rs.Classify(v, nil)
	if d.Category != model.CategoryWorship {
		t.Fatalf("category = %q, want %q", d.Category, model.CategoryWorship)
	}
	if d.Source != SourceEvent {
		t.Fatalf("source = %v, want %v", d.Source, SourceEvent)
	}
	if d.Label != "Worship Service - Traditional 9:30 AM" {
		t.Fatalf("label = %q", d.Label)
	}

	a := rs.Plan(v, d)
	if a.Title != "2024-03-10 - Worship Service - Traditional 9:30 AM" {
		t.Fatalf("title action = %q", a.Title)
	}
	if a.MoveTo != "15749517" {
		t.Fatalf("move action = %q", a.MoveTo)
	}
	if a.RemoveFrom != "" {
		t.Fatalf("remove action = %q, want none for root video", a.RemoveFrom)
	}
}

func TestClassifyLateServiceLabel(t *testing.T) {
	rs := testRuleset(t)
	// 16:30 UTC is 11:30 in Chicago, past the first-service cutoff.
	v := model.VideoRecord{
		Title:     "streamed live",
		CreatedAt: time.Date(2024, 3, 10, 16, 30, 0, 0, time.UTC),
		LiveEvent: "3261302",
	}
	d := rs.Classify(v, nil)
	if d.Label != "Worship Service - Traditional 11:00 AM" {
		t.Fatalf("label = %q", d.Label)
	}
}

func TestClassifyEventOutsideWindowFallsThrough(t *testing.T) {
	rs := testRuleset(t)
	// 20:00 UTC is 15:00 in Chicago, outside the broadcast window, and
	// the title carries no keywords.
	v := model.VideoRecord{
		Title:     "streamed live",
		CreatedAt: time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC),
		LiveEvent: "3261302",
	}
	d := rs.Classify(v, nil)
	if d.Category != model.CategoryNone {
		t.Fatalf("category = %q, want unclassified", d.Category)
	}
	if d.Source != SourceNone {
		t.Fatalf("source = %v, want %v", d.Source, SourceNone)
	}
}

func TestClassifyEventBeatsKeyword(t *testing.T) {
	rs := testRuleset(t)
	// Sunday 11:00 in Chicago, inside the worship keyword window, but the
	// linked memorial broadcast decides.
	v := model.VideoRecord{
		Title:     "Worship Celebration",
		CreatedAt: time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC),
		LiveEvent: "4972294",
	}
	d := rs.Classify(v, nil)
	if d.Category != model.CategoryWeddings {
		t.Fatalf("category = %q, want %q", d.Category, model.CategoryWeddings)
	}
	if d.Source != SourceEvent {
		t.Fatalf("source = %v, want %v", d.Source, SourceEvent)
	}
	if d.Label != "Memorials at St. Andrew" {
		t.Fatalf("label = %q", d.Label)
	}
}

func TestClassifyKeywordInsideWindow(t *testing.T) {
	rs := testRuleset(t)
	v := model.VideoRecord{
		Title:     "Sunday Worship",
		CreatedAt: time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC),
	}
	d := rs.Classify(v, nil)
	if d.Category != model.CategoryWorship {
		t.Fatalf("category = %q, want %q", d.Category, model.CategoryWorship)
	}
	if d.Source != SourceKeyword {
		t.Fatalf("source = %v, want %v", d.Source, SourceKeyword)
	}
	if d.Label != "Sunday Worship" {
		t.Fatalf("label = %q", d.Label)
	}
}

func TestClassifyKeywordOutsideWindowReroutes(t *testing.T) {
	rs := testRuleset(t)
	// Tuesday 19:00 in Chicago. A worship-template title at that hour is
	// a memorial or wedding reusing the preset.
	v := model.VideoRecord{
		Title:     "Traditional Worship",
		CreatedAt: time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
	}
	d := rs.Classify(v, nil)
	if d.Category != model.CategoryWeddings {
		t.Fatalf("category = %q, want %q", d.Category, model.CategoryWeddings)
	}
	if d.Label != "Traditional Worship" {
		t.Fatalf("label = %q", d.Label)
	}
}

func TestClassifyCalendarHint(t *testing.T) {
	rs := testRuleset(t)
	v := model.VideoRecord{
		Title:     "untitled stream",
		CreatedAt: time.Date(2024, 3, 12, 16, 0, 0, 0, time.UTC),
	}
	hint := &CalendarHint{
		Title: "Smith Memorial Service",
		Start: time.Date(2024, 3, 12, 16, 0, 0, 0, time.UTC),
	}
	d := rs.Classify(v, hint)
	if d.Category != model.CategoryWeddings {
		t.Fatalf("category = %q, want %q", d.Category, model.CategoryWeddings)
	}
	if d.Source != SourceCalendar {
		t.Fatalf("source = %v, want %v", d.Source, SourceCalendar)
	}
	if d.Label != "Smith Memorial Service" {
		t.Fatalf("label = %q", d.Label)
	}
}

func TestClassifyCalendarHintIgnoresWindows(t *testing.T) {
	rs := testRuleset(t)
	// The scheduled event's own start time is authoritative, so a worship
	// title from the calendar is worship even on a Tuesday.
	v := model.VideoRecord{
		Title:     "untitled stream",
		CreatedAt: time.Date(2024, 3, 12, 16, 0, 0, 0, time.UTC),
	}
	hint := &CalendarHint{Title: "Traditional Worship"}
	d := rs.Classify(v, hint)
	if d.Category != model.CategoryWorship {
		t.Fatalf("category = %q, want %q", d.Category, model.CategoryWorship)
	}
	if d.Source != SourceCalendar {
		t.Fatalf("source = %v, want %v", d.Source, SourceCalendar)
	}
}

func TestClassifyUnclassified(t *testing.T) {
	rs := testRuleset(t)
	v := model.VideoRecord{
		Title:     "Random Footage",
		CreatedAt: time.Date(2024, 3, 12, 16, 0, 0, 0, time.UTC),
	}
	d := rs.Classify(v, nil)
	if d.Category != model.CategoryNone {
		t.Fatalf("category = %q, want unclassified", d.Category)
	}
	if d.Label != "Random Footage" {
		t.Fatalf("label = %q", d.Label)
	}
}

func TestClassifyStripsDateBeforeKeywordMatch(t *testing.T) {
	rs := testRuleset(t)
	// A previous run already prefixed the title. The date must not leak
	// into keyword matching or stack on re-runs.
	v := model.VideoRecord{
		Title:     "2024-03-10 - Sunday Worship",
		CreatedAt: time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC),
		Folder:    "15749517",
	}
	d := rs.Classify(v, nil)
	if d.Category != model.CategoryWorship {
		t.Fatalf("category = %q, want %q", d.Category, model.CategoryWorship)
	}
	a := rs.Plan(v, d)
	if !a.None() {
		t.Fatalf("expected no actions for settled video, got %+v", a)
	}
}

func TestRulesetValidate(t *testing.T) {
	zone := time.UTC
	for _, tc := range []struct {
		name string
		rs   Ruleset
	}{
		{"no zone", Ruleset{Rules: []Rule{{Name: "x", Category: model.CategoryWorship, Event: "1"}}}},
		{"unmatchable rule", Ruleset{Zone: zone, Rules: []Rule{{Name: "x", Category: model.CategoryWorship}}}},
		{"no category", Ruleset{Zone: zone, Rules: []Rule{{Name: "x", Event: "1"}}}},
	} {
		if err := tc.rs.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestRulesetIsExcluded(t *testing.T) {
	rs := testRuleset(t)
	if !rs.IsExcluded("182762") {
		t.Fatal("expected 182762 to be excluded")
	}
	if rs.IsExcluded("15749517") {
		t.Fatal("expected destination folder not to be excluded")
	}
}
