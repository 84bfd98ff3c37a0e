package daterange

import (
	"time"

	"github.com/mauricejumelet/advisor-cli/internal/ollama"
)

// AnchorSource supplies the most recent date present in loaded data. The
// resolver treats that date as "today" so relative phrases are relative to
// the data rather than the wall clock.
type AnchorSource interface {
	LastDate() (time.Time, error)
}

// Resolver runs the strategies in fixed precedence order and returns the
// first structurally valid range. Later strategies are more expensive and
// only run when the earlier ones miss.
type Resolver struct {
	source   AnchorSource
	now      func() time.Time
	matchers []Matcher
}

// NewResolver builds the standard cascade: rule table, fuzzy parser,
// model fallback. source and client may be nil; a nil source pins the
// anchor to the real current date and a nil client disables the fallback.
func NewResolver(source AnchorSource, client *ollama.Client) *Resolver {
	return &Resolver{
		source:   source,
		now:      time.Now,
		matchers: []Matcher{Rules{}, Fuzzy{}, NewModel(client)},
	}
}

// Anchor returns the date used as "today" for this request. It is
// recomputed on every call: the underlying data can change between chat
// turns, so callers must not cache it across requests.
func (r *Resolver) Anchor() time.Time {
	if r.source != nil {
		if d, err := r.source.LastDate(); err == nil {
			return dateOnly(d)
		}
	}
	return dateOnly(r.now())
}

// Parse resolves the text to a date range. A strategy's result is only
// accepted when both endpoints are set and Start <= End; an invalid
// result counts as a miss and the next strategy runs. Returns false when
// every strategy misses.
func (r *Resolver) Parse(text string) (Range, bool) {
	anchor := r.Anchor()
	for _, m := range r.matchers {
		rng, ok := m.Match(text, anchor)
		if !ok {
			continue
		}
		if rng.Start.IsZero() || rng.End.IsZero() || rng.Start.After(rng.End) {
			continue
		}
		return rng, true
	}
	return Range{}, false
}
