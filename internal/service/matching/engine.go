package matching

import (
	"context"
	"iter"
	"slices"
	"strings"
	"time"

	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
)

type tripSource interface {
	All() iter.Seq[domain.Trip]
}

type observer interface {
	Observe(float64)
}

// Engine answers sender searches against the trip registry.
type Engine struct {
	trips   tripSource
	results observer
	logger  logx.Logger
	now     func() time.Time
}

// NewEngine creates a match Engine. results may be nil.
func NewEngine(trips tripSource, results observer, logger logx.Logger) *Engine {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Engine{
		trips:   trips,
		results: results,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetNowForTest overrides the clock used to classify urgency.
func (e *Engine) SetNowForTest(fn func() time.Time) {
	if fn != nil {
		e.now = fn
	}
}

// Search returns active trips on the requested route that accept the category and
// still have capacity, most urgent first. Ties keep registry order.
func (e *Engine) Search(_ context.Context, q domain.SearchQuery) []domain.Match {
	return e.SearchAt(q, e.now())
}

// SearchAt is Search with an explicit reference time.
func (e *Engine) SearchAt(q domain.SearchQuery, now time.Time) []domain.Match {
	origin := normalize(q.Origin)
	destination := normalize(q.Destination)

	out := make([]domain.Match, 0)
	for t := range e.trips.All() {
		if origin != "" && normalize(t.From) != origin {
			continue
		}
		if destination != "" && normalize(t.To) != destination {
			continue
		}
		if q.Category != "" && !t.Carries(q.Category) {
			continue
		}
		if t.RemainingKg <= 0 {
			continue
		}
		u := domain.Classify(t.DepartureAt, now)
		if !u.Active() {
			continue
		}
		out = append(out, domain.Match{Trip: t, Urgency: u})
	}

	slices.SortStableFunc(out, func(a, b domain.Match) int {
		if a.Urgency.Priority != b.Urgency.Priority {
			return a.Urgency.Priority - b.Urgency.Priority
		}
		return a.Trip.DepartureAt.Compare(b.Trip.DepartureAt)
	})

	if e.results != nil {
		e.results.Observe(float64(len(out)))
	}
	e.logger.Debug("search served",
		logx.String("origin", origin),
		logx.String("destination", destination),
		logx.String("category", string(q.Category)),
		logx.Int("matches", len(out)),
	)
	return out
}

func normalize(s string) string {
	return strings.ToLower(domain.NormalizeCity(s))
}
