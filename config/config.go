package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"automaton/model"
)

// Config collects every runtime setting once at startup. It is read from
// the process environment, with an optional .env file folded in first,
// validated before anything touches the network, and passed into
// constructors unchanged afterwards.
type Config struct {
	VimeoToken string `validate:"required"`
	VimeoURL   string `validate:"required,url"`

	Timezone  string        `validate:"required"`
	Lookback  time.Duration `validate:"gt=0"`
	Interval  time.Duration `validate:"min=0"`
	DryRun    bool
	RootOnly  bool
	RulesFile string
	NtfyTopic string
	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`

	// Events-calendar lookup is optional; setting the endpoint requires
	// the client credentials that go with it.
	MPEndpoint         string        `validate:"omitempty,url"`
	MPClientID         string        `validate:"required_with=MPEndpoint"`
	MPClientSecret     string        `validate:"required_with=MPEndpoint"`
	MaxEventGap        time.Duration `validate:"min=0"`
	StreamingLocations []int

	// Folder and exclusion overrides; empty keeps the compiled-in table.
	WorshipFolder   model.FolderID
	WeddingsFolder  model.FolderID
	ClassesFolder   model.FolderID
	ExcludedFolders []model.FolderID
}

// Load reads the environment into a validated Config. A missing .env
// file is fine; a present one never overrides variables already set in
// the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		VimeoToken:     getParam("VIMEO_ACCESS_TOKEN", ""),
		VimeoURL:       strings.TrimRight(getParam("VIMEO_API_URL", "https://api.vimeo.com"), "/"),
		Timezone:       getParam("AUTOMATON_TIMEZONE", "America/Chicago"),
		RulesFile:      getParam("AUTOMATON_RULES_FILE", ""),
		NtfyTopic:      getParam("AUTOMATON_NTFY_TOPIC", ""),
		LogFormat:      getParam("AUTOMATON_LOG_FORMAT", "text"),
		LogLevel:       getParam("AUTOMATON_LOG_LEVEL", "info"),
		MPEndpoint:     strings.TrimRight(getParam("MP_API_ENDPOINT", ""), "/"),
		MPClientID:     getParam("MP_CLIENT_ID", ""),
		MPClientSecret: getParam("MP_CLIENT_SECRET", ""),
		WorshipFolder:  model.FolderID(getParam("AUTOMATON_WORSHIP_FOLDER_ID", "")),
		WeddingsFolder: model.FolderID(getParam("AUTOMATON_WEDDINGS_FOLDER_ID", "")),
		ClassesFolder:  model.FolderID(getParam("AUTOMATON_CLASSES_FOLDER_ID", "")),
	}

	lookback, err := intParam("AUTOMATON_LOOKBACK_HOURS", 48)
	if err != nil {
		return nil, err
	}
	cfg.Lookback = time.Duration(lookback) * time.Hour

	maxGap, err := intParam("AUTOMATON_MAX_EVENT_GAP_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	cfg.MaxEventGap = time.Duration(maxGap) * time.Minute

	if cfg.Interval, err = durationParam("AUTOMATON_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.DryRun, err = boolParam("AUTOMATON_DRY_RUN", false); err != nil {
		return nil, err
	}
	if cfg.RootOnly, err = boolParam("AUTOMATON_ROOT_ONLY", false); err != nil {
		return nil, err
	}

	for _, id := range csvParam("AUTOMATON_EXCLUDED_FOLDERS") {
		cfg.ExcludedFolders = append(cfg.ExcludedFolders, model.FolderID(id))
	}
	for _, loc := range csvParam("AUTOMATON_STREAMING_LOCATIONS") {
		n, err := strconv.Atoi(loc)
		if err != nil {
			return nil, fmt.Errorf("AUTOMATON_STREAMING_LOCATIONS: %w", err)
		}
		cfg.StreamingLocations = append(cfg.StreamingLocations, n)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// CalendarEnabled reports whether the events-calendar lookup is configured.
func (c *Config) CalendarEnabled() bool {
	return c.MPEndpoint != ""
}

// Level maps the configured log level onto slog.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}

func intParam(param string, def int) (int, error) {
	val, ok := os.LookupEnv(param)
	if !ok || val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", param, err)
	}
	return n, nil
}

func boolParam(param string, def bool) (bool, error) {
	val, ok := os.LookupEnv(param)
	if !ok || val == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%s: %w", param, err)
	}
	return b, nil
}

func durationParam(param string, def time.Duration) (time.Duration, error) {
	val, ok := os.LookupEnv(param)
	if !ok || val == "" {
		return def, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", param, err)
	}
	return d, nil
}

func csvParam(param string) []string {
	var out []string
	for _, part := range strings.Split(getParam(param, ""), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
