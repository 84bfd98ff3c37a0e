package daterange

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Rules resolves fixed calendar idioms. It is the first and cheapest
// strategy: literal phrase checks, then numeric relative patterns, then an
// explicit ISO date pair. The order is fixed and the first hit wins.
type Rules struct{}

// literalRules pairs phrase alternatives with the range they denote.
// Checked in order by containment on the lowercased text.
var literalRules = []struct {
	phrases []string
	resolve func(anchor time.Time) Range
}{
	{[]string{"this week", "current week", "past week"}, thisWeek},
	{[]string{"last week", "previous week"}, lastWeek},
	{[]string{"this month", "current month"}, thisMonth},
	{[]string{"last month", "previous month"}, lastMonth},
	{[]string{"yesterday"}, func(a time.Time) Range { return singleDay(a.AddDate(0, 0, -1)) }},
	{[]string{"today"}, func(a time.Time) Range { return singleDay(a) }},
	{[]string{"tomorrow"}, func(a time.Time) Range { return singleDay(a.AddDate(0, 0, 1)) }},
	{[]string{"fortnight"}, func(a time.Time) Range { return lastNDays(a, 14) }},
}

// relativePatterns are the "last/past N <unit>" forms. The regexes only
// admit one or two digits, so Atoi cannot fail on a capture.
var relativePatterns = []struct {
	re      *regexp.Regexp
	resolve func(anchor time.Time, n int) Range
}{
	{regexp.MustCompile(`\bpast (\d{1,2}) days\b`), lastNDays},
	{regexp.MustCompile(`\blast (\d{1,2}) days\b`), lastNDays},
	{regexp.MustCompile(`\blast (\d{1,2}) weeks\b`), func(a time.Time, n int) Range { return lastNDays(a, n*7) }},
	{regexp.MustCompile(`\blast (\d{1,2}) months\b`), lastNMonths},
}

// isoRangeRe matches two ISO dates separated by whitespace, dashes or a
// to/until/till connector, e.g. "2024-06-01 to 2024-06-05".
var isoRangeRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*(?:to|until|till|[-\x{2013}\x{2014}\s])+\s*(\d{4}-\d{2}-\d{2})`)

func (Rules) Match(text string, anchor time.Time) (Range, bool) {
	t := strings.ToLower(text)

	for _, rule := range literalRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(t, phrase) {
				return rule.resolve(anchor), true
			}
		}
	}

	// Upcoming Saturday/Sunday, or the previous pair when qualified.
	if strings.Contains(t, "weekend") {
		if strings.Contains(t, "last") || strings.Contains(t, "past") {
			return weekend(anchor, -1), true
		}
		return weekend(anchor, 0), true
	}

	for _, p := range relativePatterns {
		if m := p.re.FindStringSubmatch(t); m != nil {
			n, _ := strconv.Atoi(m[1])
			return p.resolve(anchor, n), true
		}
	}

	if m := isoRangeRe.FindStringSubmatch(t); m != nil {
		start, err1 := time.Parse("2006-01-02", m[1])
		end, err2 := time.Parse("2006-01-02", m[2])
		if err1 == nil && err2 == nil {
			return Range{Start: start, End: end}, true
		}
	}

	return Range{}, false
}
