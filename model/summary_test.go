package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewRunSummary(t *testing.T) {
	s := NewRunSummary(true)
	if s.RunID == uuid.Nil {
		t.Fatalf("expected a run id")
	}
	if !s.DryRun {
		t.Fatalf("expected dry run flag to be carried")
	}
	if s.StartedAt.IsZero() {
		t.Fatalf("expected start time to be set")
	}
	if got := s.Duration(); got != 0 {
		t.Fatalf("expected zero duration before finish, got %s", got)
	}
}

func TestRunSummaryTallies(t *testing.T) {
	s := NewRunSummary(false)
	s.TitleUpdated = 3
	s.Moved = 2
	s.SkippedExcluded = 4
	s.SkippedPlaceholder = 1
	s.SkippedFolder = 2

	if got := s.Mutations(); got != 5 {
		t.Fatalf("expected 5 mutations, got %d", got)
	}
	if got := s.Skipped(); got != 7 {
		t.Fatalf("expected 7 skipped, got %d", got)
	}
}

func TestRunSummaryFinish(t *testing.T) {
	s := NewRunSummary(false)
	s.Finish()
	if s.FinishedAt.IsZero() {
		t.Fatalf("expected finish time to be set")
	}
	if s.Duration() < 0 {
		t.Fatalf("expected non-negative duration, got %s", s.Duration())
	}
}
