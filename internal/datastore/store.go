// Package datastore holds the uploaded Date/Score table in memory and
// caches the raw CSV on disk so the last upload survives a restart.
package datastore

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrNoData is returned by LastDate when no CSV has been loaded.
var ErrNoData = errors.New("no data loaded")

const cacheFileName = "latest.csv"

// Score is one labeled data point, 0-100.
type Score struct {
	Label string
	Value int
}

type row struct {
	date  time.Time
	score int
}

// Store is safe for concurrent use; the web UI reads and replaces the
// table from different requests.
type Store struct {
	cacheDir string

	mu   sync.RWMutex
	rows []row
}

func New(cacheDir string) *Store {
	return &Store{cacheDir: cacheDir}
}

// CachePath returns where the last uploaded CSV is persisted.
func (s *Store) CachePath() string {
	return filepath.Join(s.cacheDir, cacheFileName)
}

// LoadCached restores the last uploaded CSV from disk if present.
// Returns true when a cached file was found and loaded.
func (s *Store) LoadCached() (bool, error) {
	raw, err := os.ReadFile(s.CachePath())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading cached CSV: %w", err)
	}
	if err := s.LoadCSV(raw); err != nil {
		return false, err
	}
	return true, nil
}

// LoadFile loads a CSV file from disk.
func (s *Store) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return s.LoadCSV(raw)
}

// LoadCSV parses and stores a CSV with Date and Score columns, replacing
// any previously loaded table, and persists the raw bytes to the cache.
// Dates may be full dates in common layouts, or bare day numbers which
// are resolved into the current month.
func (s *Store) LoadCSV(raw []byte) error {
	rows, err := parseCSV(raw, time.Now())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.cacheDir, 0o755); err == nil {
		_ = os.WriteFile(s.CachePath(), raw, 0o644)
	}

	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
	return nil
}

// LastDate returns the most recent date in the loaded table, or ErrNoData.
func (s *Store) LastDate() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.rows) == 0 {
		return time.Time{}, ErrNoData
	}
	return s.rows[len(s.rows)-1].date, nil
}

// Rows returns the number of loaded data points.
func (s *Store) Rows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Scores returns the data points between start and end inclusive, in date
// order, labeled like "Wed 5". Empty when no rows fall in range.
func (s *Store) Scores(start, end time.Time) []Score {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Score
	for _, r := range s.rows {
		if r.date.Before(start) || r.date.After(end) {
			continue
		}
		out = append(out, Score{Label: r.date.Format("Mon 2"), Value: r.score})
	}
	return out
}

func parseCSV(raw []byte, now time.Time) ([]row, error) {
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("CSV has no data rows")
	}

	dateCol, scoreCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "score":
			scoreCol = i
		}
	}
	if dateCol == -1 || scoreCol == -1 {
		return nil, errors.New("CSV must have Date and Score columns")
	}

	body := records[1:]

	// When every date is a bare number the sheet only recorded the day of
	// month; anchor those days in the current month.
	daysOnly := true
	for _, rec := range body {
		if !isDigits(strings.TrimSpace(rec[dateCol])) {
			daysOnly = false
			break
		}
	}

	rows := make([]row, 0, len(body))
	for i, rec := range body {
		dateStr := strings.TrimSpace(rec[dateCol])

		var d time.Time
		if daysOnly {
			day, _ := strconv.Atoi(dateStr)
			d = time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC)
		} else {
			d, err = parseDate(dateStr)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
		}

		score, err := strconv.Atoi(strings.TrimSpace(rec[scoreCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid score %q", i+2, rec[scoreCol])
		}
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}

		rows = append(rows, row{date: d, score: score})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })
	return rows, nil
}

// parseDate parses CSV date strings in common layouts.
func parseDate(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"02-01-2006",
		time.RFC3339,
	}

	for _, layout := range formats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
