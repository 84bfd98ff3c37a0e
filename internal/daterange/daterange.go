// Package daterange resolves free-form natural-language time phrases
// ("last week", "past 14 days", "from 3 Jun to 17 Jun") into concrete
// start/end date ranges. Three strategies are tried in fixed order:
// a rule table for calendar idioms, a fuzzy natural-language parser for
// prose forms, and a language-model fallback for everything else.
package daterange

import "time"

// Range is an inclusive pair of calendar dates with Start <= End.
type Range struct {
	Start time.Time
	End   time.Time
}

// Matcher is one resolution strategy. It returns the resolved range and
// true on a match, or the zero Range and false when the text is not
// recognized. Matchers never fail loudly: any internal error is a miss.
type Matcher interface {
	Match(text string, anchor time.Time) (Range, bool)
}

// dateOnly truncates t to a calendar date at midnight UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekdayIndex returns the day of week with Monday = 0 .. Sunday = 6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthsBack returns the date n whole months before t, keeping the day of
// month and clamping it to the last valid day of the target month
// (2024-03-31 minus 1 month is 2024-02-29).
func monthsBack(t time.Time, n int) time.Time {
	year, month := t.Year(), int(t.Month())-n
	for month <= 0 {
		month += 12
		year--
	}
	day := t.Day()
	if max := daysIn(year, time.Month(month)); day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func singleDay(d time.Time) Range {
	return Range{Start: d, End: d}
}

// lastNDays is the n-day window ending at anchor inclusive, so n=1 is
// just the anchor itself.
func lastNDays(anchor time.Time, n int) Range {
	return Range{Start: anchor.AddDate(0, 0, -(n - 1)), End: anchor}
}

// thisWeek runs from Monday of the anchor's week through the anchor.
func thisWeek(anchor time.Time) Range {
	monday := anchor.AddDate(0, 0, -weekdayIndex(anchor))
	return Range{Start: monday, End: anchor}
}

// lastWeek is the full Monday-to-Sunday week before the anchor's week.
func lastWeek(anchor time.Time) Range {
	monday := thisWeek(anchor).Start.AddDate(0, 0, -7)
	return Range{Start: monday, End: monday.AddDate(0, 0, 6)}
}

// thisMonth runs from the first of the anchor's month through the anchor.
func thisMonth(anchor time.Time) Range {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: first, End: anchor}
}

// lastMonth is the whole calendar month preceding the anchor's month.
func lastMonth(anchor time.Time) Range {
	lastDay := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	first := time.Date(lastDay.Year(), lastDay.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: first, End: lastDay}
}

// lastNMonths spans from the anchor's day n months back (clamped) through
// the anchor.
func lastNMonths(anchor time.Time, n int) Range {
	return Range{Start: monthsBack(anchor, n), End: anchor}
}

// weekend is the Saturday/Sunday pair nearest after the anchor, shifted by
// offset whole weeks (offset -1 selects the previous weekend).
func weekend(anchor time.Time, offset int) Range {
	saturday := anchor.AddDate(0, 0, (5-weekdayIndex(anchor)+7)%7+7*offset)
	return Range{Start: saturday, End: saturday.AddDate(0, 0, 1)}
}
