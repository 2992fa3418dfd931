// Package artifact persists generated calendars as timestamp-named JSON files.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// TimestampLayout formats the run timestamp used in both the artifact body
// and the file name.
const TimestampLayout = "20060102_150405"

// filePrefix and fileExt fix the artifact naming pattern.
const (
	filePrefix = "content_calendar_"
	fileExt    = ".json"
)

// Tokens summarizes estimated token usage for a run.
type Tokens struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Total  int `json:"total"`
}

// Metrics is the performance summary attached to a saved calendar.
type Metrics struct {
	ExecutionTimeSeconds float64 `json:"execution_time_seconds"`
	Tokens               Tokens  `json:"tokens"`
	EstimatedCostUSD     float64 `json:"estimated_cost_usd"`
}

// Calendar is the durable output of one successful run. Files are immutable
// once written.
type Calendar struct {
	Industry           string   `json:"industry"`
	TargetAudience     string   `json:"target_audience"`
	ContentGoals       string   `json:"content_goals"`
	Timestamp          string   `json:"timestamp"`
	ContentCalendar    string   `json:"content_calendar"`
	PerformanceMetrics *Metrics `json:"performance_metrics,omitempty"`
}

// Store writes calendar artifacts into a single output directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir means the current
// working directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// Save writes the calendar as content_calendar_{timestamp}.json and returns
// the file path. The timestamp field is stamped here so that the body and
// the file name always agree.
func (s *Store) Save(cal *Calendar) (string, error) {
	if cal.Timestamp == "" {
		cal.Timestamp = time.Now().Format(TimestampLayout)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(cal, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal calendar: %w", err)
	}

	path := filepath.Join(s.dir, filePrefix+cal.Timestamp+fileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write calendar file: %w", err)
	}
	return path, nil
}

// List returns saved artifact file names, newest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileExt) {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Read returns the raw bytes of a saved artifact by file name. The name is
// stripped to its base to keep reads inside the output directory.
func (s *Store) Read(name string) ([]byte, error) {
	name = filepath.Base(name)
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
		return nil, fmt.Errorf("not a calendar artifact: %s", name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}
	return data, nil
}
