package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"automaton/classify"
	"automaton/model"
)

// Ruleset builds the classification table for a run: the compiled-in
// defaults, or the rules file replacing them wholesale. Folder and
// exclusion overrides from the environment apply last either way.
func (c *Config) Ruleset() (*classify.Ruleset, error) {
	zone, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}

	rs := &classify.Ruleset{
		Rules:    defaultRules(),
		Folders:  defaultFolders(),
		Excluded: defaultExcluded(),
		Zone:     zone,
	}
	if c.RulesFile != "" {
		if rs, err = loadRules(c.RulesFile, zone); err != nil {
			return nil, err
		}
	}

	if c.WorshipFolder != "" {
		rs.Folders[model.CategoryWorship] = c.WorshipFolder
	}
	if c.WeddingsFolder != "" {
		rs.Folders[model.CategoryWeddings] = c.WeddingsFolder
	}
	if c.ClassesFolder != "" {
		rs.Folders[model.CategoryClasses] = c.ClassesFolder
	}
	if len(c.ExcludedFolders) > 0 {
		rs.Excluded = c.ExcludedFolders
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

type rulesFile struct {
	Rules    []ruleEntry       `toml:"rule"`
	Folders  map[string]string `toml:"folders"`
	Excluded []string          `toml:"excluded"`
}

type ruleEntry struct {
	Name     string         `toml:"name"`
	Category string         `toml:"category"`
	Event    string         `toml:"event"`
	Keywords []string       `toml:"keywords"`
	Windows  []windowEntry  `toml:"window"`
	Outside  string         `toml:"outside"`
	Services []serviceEntry `toml:"service"`
}

type windowEntry struct {
	Days  []string `toml:"days"`
	Start string   `toml:"start"`
	End   string   `toml:"end"`
}

type serviceEntry struct {
	Label  string `toml:"label"`
	Before int    `toml:"before"`
}

func loadRules(path string, zone *time.Location) (*classify.Ruleset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer file.Close()

	var rf rulesFile
	if err := toml.NewDecoder(file).Decode(&rf); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	rs := &classify.Ruleset{
		Folders:  make(map[model.Category]model.FolderID, len(rf.Folders)),
		Excluded: make([]model.FolderID, 0, len(rf.Excluded)),
		Zone:     zone,
	}
	for cat, id := range rf.Folders {
		rs.Folders[model.Category(cat)] = model.FolderID(id)
	}
	for _, id := range rf.Excluded {
		rs.Excluded = append(rs.Excluded, model.FolderID(id))
	}
	for i, entry := range rf.Rules {
		rule, err := entry.rule()
		if err != nil {
			return nil, fmt.Errorf("rules file: rule %d (%q): %w", i, entry.Name, err)
		}
		rs.Rules = append(rs.Rules, rule)
	}
	return rs, nil
}

func (e ruleEntry) rule() (classify.Rule, error) {
	rule := classify.Rule{
		Name:     e.Name,
		Category: model.Category(e.Category),
		Event:    model.LiveEventID(e.Event),
		Keywords: e.Keywords,
		Outside:  model.Category(e.Outside),
	}
	for _, w := range e.Windows {
		window, err := w.window()
		if err != nil {
			return classify.Rule{}, err
		}
		rule.Windows = append(rule.Windows, window)
	}
	for _, s := range e.Services {
		rule.Services = append(rule.Services, classify.ServiceTime{Label: s.Label, Before: s.Before})
	}
	return rule, nil
}

func (e windowEntry) window() (classify.Window, error) {
	start, err := classify.ParseClock(e.Start)
	if err != nil {
		return classify.Window{}, err
	}
	end, err := classify.ParseClock(e.End)
	if err != nil {
		return classify.Window{}, err
	}
	w := classify.Window{Start: start, End: end}
	for _, d := range e.Days {
		day, err := parseWeekday(d)
		if err != nil {
			return classify.Window{}, err
		}
		w.Days = append(w.Days, day)
	}
	return w, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
