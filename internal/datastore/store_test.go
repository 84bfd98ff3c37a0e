package datastore

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

const sampleCSV = `Date,Score
2024-06-03,78
2024-06-01,82
2024-06-02,75
2024-06-05,90
2024-06-04,85
`

func newLoadedStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	if err := s.LoadCSV([]byte(sampleCSV)); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	return s
}

func TestLastDate(t *testing.T) {
	s := newLoadedStore(t)

	got, err := s.LastDate()
	if err != nil {
		t.Fatalf("LastDate: %v", err)
	}
	want := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("LastDate() = %s, want %s", got, want)
	}
}

func TestLastDateNoData(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.LastDate(); !errors.Is(err, ErrNoData) {
		t.Errorf("LastDate() error = %v, want ErrNoData", err)
	}
}

func TestScoresOrderedAndLabeled(t *testing.T) {
	s := newLoadedStore(t)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	got := s.Scores(start, end)

	// 2024-06-01 was a Saturday; rows come back in date order even though
	// the CSV was shuffled.
	want := []Score{
		{Label: "Sat 1", Value: 82},
		{Label: "Sun 2", Value: 75},
		{Label: "Mon 3", Value: 78},
	}
	if len(got) != len(want) {
		t.Fatalf("Scores() returned %d rows, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scores()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScoresEmptyRange(t *testing.T) {
	s := newLoadedStore(t)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := s.Scores(start, end); len(got) != 0 {
		t.Errorf("Scores() = %v, want empty", got)
	}
}

func TestLoadCSVDayNumbersResolveToCurrentMonth(t *testing.T) {
	s := New(t.TempDir())
	csv := "Date,Score\n1,70\n2,80\n3,90\n"
	if err := s.LoadCSV([]byte(csv)); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	now := time.Now()
	got, err := s.LastDate()
	if err != nil {
		t.Fatalf("LastDate: %v", err)
	}
	want := time.Date(now.Year(), now.Month(), 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("LastDate() = %s, want %s", got, want)
	}
}

func TestLoadCSVClampsScores(t *testing.T) {
	s := New(t.TempDir())
	csv := "Date,Score\n2024-06-01,150\n2024-06-02,-5\n"
	if err := s.LoadCSV([]byte(csv)); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	got := s.Scores(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	)
	if len(got) != 2 || got[0].Value != 100 || got[1].Value != 0 {
		t.Errorf("Scores() = %v, want values clamped to 100 and 0", got)
	}
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		desc string
		csv  string
	}{
		{"empty input", ""},
		{"header only", "Date,Score\n"},
		{"missing score column", "Date,Value\n2024-06-01,78\n"},
		{"missing date column", "Day,Score\n2024-06-01,78\n"},
		{"unparseable date", "Date,Score\nnot-a-date,78\n"},
		{"unparseable score", "Date,Score\n2024-06-01,high\n"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			s := New(t.TempDir())
			if err := s.LoadCSV([]byte(tt.csv)); err == nil {
				t.Error("LoadCSV succeeded, want error")
			}
		})
	}
}

func TestLoadCSVReplacesPreviousTable(t *testing.T) {
	s := newLoadedStore(t)
	if err := s.LoadCSV([]byte("Date,Score\n2024-07-01,50\n")); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if s.Rows() != 1 {
		t.Errorf("Rows() = %d after reload, want 1", s.Rows())
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := New(dir)
	if err := s.LoadCSV([]byte(sampleCSV)); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	// A new store over the same cache dir picks up the last upload.
	restored := New(dir)
	found, err := restored.LoadCached()
	if err != nil {
		t.Fatalf("LoadCached: %v", err)
	}
	if !found {
		t.Fatal("LoadCached() = false, want cached CSV found")
	}
	if restored.Rows() != s.Rows() {
		t.Errorf("restored %d rows, want %d", restored.Rows(), s.Rows())
	}
}

func TestLoadCachedMissing(t *testing.T) {
	s := New(t.TempDir())
	found, err := s.LoadCached()
	if err != nil {
		t.Fatalf("LoadCached: %v", err)
	}
	if found {
		t.Error("LoadCached() = true with no cache file")
	}
}

func TestDateLayouts(t *testing.T) {
	for _, dateStr := range []string{"2024-06-01", "2024/06/01", "06/01/2024"} {
		t.Run(dateStr, func(t *testing.T) {
			s := New(t.TempDir())
			csv := fmt.Sprintf("Date,Score\n%s,78\n", dateStr)
			if err := s.LoadCSV([]byte(csv)); err != nil {
				t.Fatalf("LoadCSV: %v", err)
			}
			got, err := s.LastDate()
			if err != nil {
				t.Fatalf("LastDate: %v", err)
			}
			want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
			if !got.Equal(want) {
				t.Errorf("LastDate() = %s, want %s", got, want)
			}
		})
	}
}
