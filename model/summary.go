package model

import (
	"time"

	"github.com/google/uuid"
)

// RunSummary tallies one sweep over the account. A video lands in exactly
// one of the skip counters or in Eligible; TitleUpdated and Moved can both
// fire for the same video, and Failed counts failed mutation attempts, not
// videos.
type RunSummary struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool

	Scanned            int
	Eligible           int
	TitleUpdated       int
	Moved              int
	Unclassified       int
	SkippedExcluded    int
	SkippedPlaceholder int
	SkippedFolder      int
	Failed             int
}

func NewRunSummary(dryRun bool) *RunSummary {
	return &RunSummary{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		DryRun:    dryRun,
	}
}

// Finish stamps the end of the run. Times are kept in UTC so summaries
// compare across host timezone changes.
func (s *RunSummary) Finish() {
	s.FinishedAt = time.Now().UTC()
}

func (s *RunSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Skipped is the total of all skip reasons.
func (s *RunSummary) Skipped() int {
	return s.SkippedExcluded + s.SkippedPlaceholder + s.SkippedFolder
}

// Mutations is the number of write calls the run performed (or, in dry-run
// mode, would have performed).
func (s *RunSummary) Mutations() int {
	return s.TitleUpdated + s.Moved
}
