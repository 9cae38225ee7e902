package sorter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"automaton/calendar"
	"automaton/classify"
	"automaton/model"
)

// Library is the slice of the hosting platform the sorter needs: account
// identity, the recent-video listing, and the three mutations.
type Library interface {
	Me(ctx context.Context) (string, error)
	RecentVideos(ctx context.Context, since time.Time) ([]model.VideoRecord, error)
	UpdateTitle(ctx context.Context, videoID model.VideoID, title string) error
	AddToFolder(ctx context.Context, userID string, folderID model.FolderID, videoID model.VideoID) error
	RemoveFromFolder(ctx context.Context, userID string, folderID model.FolderID, videoID model.VideoID) error
}

// EventSource supplies scheduled events used to refine classification of
// videos whose broadcast session has no rule of its own.
type EventSource interface {
	EventsSince(ctx context.Context, since time.Time) ([]calendar.Event, error)
}

// Notifier is told how a run went.
type Notifier interface {
	RunCompleted(ctx context.Context, summary *model.RunSummary) error
	RunFailed(ctx context.Context, err error) error
}

// Options are the per-run knobs taken from configuration.
type Options struct {
	// Lookback bounds the scan to videos created in the trailing window.
	Lookback time.Duration

	// MaxGap is how far a scheduled event's start may sit from a video's
	// creation time and still count as the matching event.
	MaxGap time.Duration

	// RootOnly restricts mutations to videos at library root, leaving
	// anything already filed by hand alone.
	RootOnly bool

	// DryRun logs and counts every action without calling the platform.
	DryRun bool
}

// Sorter drives one sweep over the account: list recent videos, classify
// each, and retitle and refile the ones that need it.
type Sorter struct {
	library  Library
	events   EventSource
	notifier Notifier
	ruleset  *classify.Ruleset
	opts     Options
	logger   *slog.Logger
}

// NewSorter creates a sorter. events may be nil when no calendar backend
// is configured.
func NewSorter(library Library, events EventSource, notifier Notifier, ruleset *classify.Ruleset, opts Options, logger *slog.Logger) *Sorter {
	return &Sorter{
		library:  library,
		events:   events,
		notifier: notifier,
		ruleset:  ruleset,
		opts:     opts,
		logger:   logger,
	}
}

// Run performs one sweep and reports what it did. The returned summary is
// never nil. Per-video failures are counted and logged, not returned; only
// errors that abort the whole run come back as error.
func (s *Sorter) Run(ctx context.Context) (*model.RunSummary, error) {
	summary := model.NewRunSummary(s.opts.DryRun)
	since := time.Now().Add(-s.opts.Lookback)
	logger := s.logger.With(slog.String("run", summary.RunID.String()))
	logger.Info("starting run", slog.Time("since", since), slog.Bool("dry_run", s.opts.DryRun))

	userID, err := s.library.Me(ctx)
	if err != nil {
		return s.abort(ctx, logger, summary, fmt.Errorf("resolve account: %w", err))
	}

	videos, err := s.library.RecentVideos(ctx, since)
	if err != nil {
		return s.abort(ctx, logger, summary, fmt.Errorf("list recent videos: %w", err))
	}

	events := s.fetchEvents(ctx, logger, since)

	for _, video := range videos {
		if ctx.Err() != nil {
			break
		}
		s.process(ctx, logger, userID, video, events, summary)
	}

	summary.Finish()
	logger.Info("run finished",
		slog.Int("scanned", summary.Scanned),
		slog.Int("retitled", summary.TitleUpdated),
		slog.Int("moved", summary.Moved),
		slog.Int("unclassified", summary.Unclassified),
		slog.Int("skipped", summary.Skipped()),
		slog.Int("failed", summary.Failed),
		slog.Duration("duration", summary.Duration()))

	if ctx.Err() == nil {
		if err := s.notifier.RunCompleted(ctx, summary); err != nil {
			logger.Warn("failed to send completion notification", slog.String("error", err.Error()))
		}
	}

	return summary, nil
}

// abort finishes the summary and reports a run-level failure.
func (s *Sorter) abort(ctx context.Context, logger *slog.Logger, summary *model.RunSummary, err error) (*model.RunSummary, error) {
	summary.Finish()
	logger.Error("run aborted", slog.String("error", err.Error()))
	if nerr := s.notifier.RunFailed(ctx, err); nerr != nil {
		logger.Warn("failed to send failure notification", slog.String("error", nerr.Error()))
	}
	return summary, err
}

// fetchEvents loads the scheduled events for the scan window. Calendar
// data only sharpens classification, so any failure here degrades to a
// hintless run instead of aborting.
func (s *Sorter) fetchEvents(ctx context.Context, logger *slog.Logger, since time.Time) []calendar.Event {
	if s.events == nil {
		return nil
	}
	events, err := s.events.EventsSince(ctx, since)
	if err != nil {
		logger.Warn("failed to fetch scheduled events, continuing without calendar hints",
			slog.String("error", err.Error()))
		return nil
	}
	logger.Debug("fetched scheduled events", slog.Int("count", len(events)))
	return events
}

func (s *Sorter) process(ctx context.Context, logger *slog.Logger, userID string, video model.VideoRecord, events []calendar.Event, summary *model.RunSummary) {
	summary.Scanned++
	vlog := logger.With(slog.String("video", string(video.ID)), slog.String("title", video.Title))

	if video.Folder != "" && s.ruleset.IsExcluded(video.Folder) {
		vlog.Debug("skipping video in excluded folder", slog.String("folder", string(video.Folder)))
		summary.SkippedExcluded++
		return
	}
	if !video.Playable {
		vlog.Debug("skipping placeholder video")
		summary.SkippedPlaceholder++
		return
	}
	if s.opts.RootOnly && video.Folder != "" {
		vlog.Debug("skipping video already in a folder", slog.String("folder", string(video.Folder)))
		summary.SkippedFolder++
		return
	}
	summary.Eligible++

	var hint *classify.CalendarHint
	if event := calendar.Nearest(events, video.CreatedAt, s.opts.MaxGap); event != nil {
		hint = &classify.CalendarHint{Title: event.Title, Start: event.Start}
	}

	decision := s.ruleset.Classify(video, hint)
	if decision.Category == model.CategoryNone {
		vlog.Debug("no rule matched")
		summary.Unclassified++
	} else {
		vlog.Info("classified video",
			slog.String("category", string(decision.Category)),
			slog.String("rule", decision.Rule),
			slog.String("source", decision.Source.String()))
	}

	actions := s.ruleset.Plan(video, decision)
	if actions.None() {
		vlog.Debug("video already in order")
		return
	}

	if actions.Title != "" {
		s.applyTitle(ctx, vlog, video, actions.Title, summary)
	}
	if actions.MoveTo != "" {
		s.applyMove(ctx, vlog, userID, video, actions, summary)
	}
}

func (s *Sorter) applyTitle(ctx context.Context, logger *slog.Logger, video model.VideoRecord, title string, summary *model.RunSummary) {
	if s.opts.DryRun {
		logger.Info("would update title", slog.String("new_title", title))
		summary.TitleUpdated++
		return
	}
	if err := s.library.UpdateTitle(ctx, video.ID, title); err != nil {
		logger.Error("failed to update title", slog.String("error", err.Error()))
		summary.Failed++
		return
	}
	logger.Info("updated title", slog.String("new_title", title))
	summary.TitleUpdated++
}

func (s *Sorter) applyMove(ctx context.Context, logger *slog.Logger, userID string, video model.VideoRecord, actions classify.Actions, summary *model.RunSummary) {
	if s.opts.DryRun {
		logger.Info("would move video", slog.String("folder", string(actions.MoveTo)))
		summary.Moved++
		return
	}
	if err := s.library.AddToFolder(ctx, userID, actions.MoveTo, video.ID); err != nil {
		logger.Error("failed to move video", slog.String("folder", string(actions.MoveTo)), slog.String("error", err.Error()))
		summary.Failed++
		return
	}
	// Folder membership is additive on the platform, so a move is an add
	// followed by a removal from the previous folder. The add alone puts
	// the video where it belongs; a failed removal is logged and left for
	// the next run.
	if actions.RemoveFrom != "" {
		if err := s.library.RemoveFromFolder(ctx, userID, actions.RemoveFrom, video.ID); err != nil {
			logger.Warn("failed to leave previous folder",
				slog.String("folder", string(actions.RemoveFrom)), slog.String("error", err.Error()))
		}
	}
	logger.Info("moved video", slog.String("folder", string(actions.MoveTo)))
	summary.Moved++
}
