package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"automaton/calendar"
	"automaton/config"
	"automaton/notify"
	"automaton/report"
	"automaton/sorter"
	"automaton/vimeo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := newLogger(cfg)

	ruleset, err := cfg.Ruleset()
	if err != nil {
		logger.Error("unable to build classification rules", slog.String("error", err.Error()))
		os.Exit(1)
	}

	library, err := vimeo.New(cfg.VimeoURL, cfg.VimeoToken, logger)
	if err != nil {
		logger.Error("unable to create vimeo client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var events sorter.EventSource
	if cfg.CalendarEnabled() {
		mp, err := calendar.New(calendar.Info{
			Endpoint:     cfg.MPEndpoint,
			ClientID:     cfg.MPClientID,
			ClientSecret: cfg.MPClientSecret,
			Locations:    cfg.StreamingLocations,
		}, logger)
		if err != nil {
			logger.Error("unable to create calendar client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		events = mp
		logger.Info("calendar lookup enabled", slog.String("endpoint", cfg.MPEndpoint))
	}

	s := sorter.NewSorter(library, events, notify.NewService(cfg.NtfyTopic), ruleset, sorter.Options{
		Lookback: cfg.Lookback,
		MaxGap:   cfg.MaxEventGap,
		RootOnly: cfg.RootOnly,
		DryRun:   cfg.DryRun,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Interval <= 0 {
		// Run failures are logged and notified; only configuration and
		// startup problems exit nonzero.
		summary, _ := s.Run(ctx)
		report.Render(os.Stdout, summary)
		return
	}

	logger.Info("sort service started", slog.Duration("interval", cfg.Interval))
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	// Interval mode keeps going through failed runs; the summary table is
	// for one-shot use, recurring runs report through logs and ntfy.
	s.Run(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("sort service stopped")
			return
		case <-ticker.C:
			s.Run(ctx)
		}
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
