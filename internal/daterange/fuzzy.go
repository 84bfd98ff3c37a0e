package daterange

import (
	"regexp"
	"strings"
	"time"

	dateparser "github.com/markusmobius/go-dateparser"
)

// Fuzzy resolves prose date expressions by splitting the text on a
// connector phrase and handing each side to a natural-language date
// parser. A coarse accent heuristic steers the parser's language; it is
// not real language detection.
type Fuzzy struct{}

var (
	fromToRe = regexp.MustCompile(`(?i)from (.+?) (?:to|until|till) (.+)`)
	sinceRe  = regexp.MustCompile(`(?i)since (.+)`)
	untilRe  = regexp.MustCompile(`(?i)(?:until|till) (.+)`)

	italianAccentRe = regexp.MustCompile(`(?i)[àèìòù]`)
	spanishAccentRe = regexp.MustCompile(`(?i)[áéíóúñ]`)
)

// detectLang picks the parser language from diagnostic accented
// characters, defaulting to English.
func detectLang(text string) string {
	if italianAccentRe.MatchString(text) {
		return "it"
	}
	if spanishAccentRe.MatchString(text) {
		return "es"
	}
	return "en"
}

func (Fuzzy) Match(text string, anchor time.Time) (Range, bool) {
	lang := detectLang(text)

	// "from A to B": both sides must parse; an inverted pair is left for
	// the resolver's validation to reject.
	if m := fromToRe.FindStringSubmatch(text); m != nil {
		start, ok1 := parseFuzzyDate(m[1], lang, anchor)
		end, ok2 := parseFuzzyDate(m[2], lang, anchor)
		if ok1 && ok2 {
			return Range{Start: start, End: end}, true
		}
	}

	// "since A": A through the anchor.
	if m := sinceRe.FindStringSubmatch(text); m != nil {
		if start, ok := parseFuzzyDate(m[1], lang, anchor); ok {
			return Range{Start: start, End: anchor}, true
		}
	}

	// "until A": a fixed 7-day window ending at A.
	if m := untilRe.FindStringSubmatch(text); m != nil {
		if end, ok := parseFuzzyDate(m[1], lang, anchor); ok {
			return Range{Start: end.AddDate(0, 0, -6), End: end}, true
		}
	}

	// Bare expression ("3 days ago", "2 giugno"): a single-day range.
	if d, ok := parseFuzzyDate(text, lang, anchor); ok {
		return singleDay(d), true
	}

	return Range{}, false
}

// parseFuzzyDate parses one free-text date expression relative to the
// anchor. Anchoring the parser keeps resolution idempotent for a fixed
// anchor regardless of the wall clock.
func parseFuzzyDate(expr, lang string, anchor time.Time) (time.Time, bool) {
	cfg := &dateparser.Configuration{
		CurrentTime: anchor,
		Languages:   []string{lang},
	}
	d, err := dateparser.Parse(cfg, strings.TrimSpace(expr))
	if err != nil || d.Time.IsZero() {
		return time.Time{}, false
	}
	return dateOnly(d.Time), true
}
