package capacity

import (
	"context"
	"errors"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
)

type tripStore interface {
	Get(id domain.TripID) (domain.Trip, error)
	Update(id domain.TripID, fn func(*domain.Trip) error) (domain.Trip, error)
}

type outcomeCounter interface {
	Inc(op, outcome string)
}

// Snapshot is the capacity view of a trip after an operation.
type Snapshot struct {
	TripID      domain.TripID
	TotalKg     float64
	RemainingKg float64
	Fraction    float64
}

// Service is the capacity ledger used by booking flows. Every change runs as a
// single check-then-act step under the store's lock.
type Service struct {
	store   tripStore
	metrics outcomeCounter
	logger  logx.Logger
}

// NewService creates a capacity Service.
func NewService(store tripStore, metrics outcomeCounter, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{store: store, metrics: metrics, logger: logger}
}

// Allocate reserves amount kilograms on the trip.
func (s *Service) Allocate(_ context.Context, id domain.TripID, amount float64) (Snapshot, error) {
	return s.apply("allocate", id, amount, func(t *domain.Trip) error { return t.Allocate(amount) })
}

// Release returns amount kilograms to the trip, clamped to its total.
func (s *Service) Release(_ context.Context, id domain.TripID, amount float64) (Snapshot, error) {
	return s.apply("release", id, amount, func(t *domain.Trip) error { return t.Release(amount) })
}

// Current returns the trip's capacity without changing it.
func (s *Service) Current(_ context.Context, id domain.TripID) (Snapshot, error) {
	t, err := s.store.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotOf(t)
}

func snapshotOf(t domain.Trip) (Snapshot, error) {
	frac, err := t.RemainingFraction()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{TripID: t.ID, TotalKg: t.TotalKg, RemainingKg: t.RemainingKg, Fraction: frac}, nil
}

func (s *Service) apply(op string, id domain.TripID, amount float64, fn func(*domain.Trip) error) (Snapshot, error) {
	t, err := s.store.Update(id, fn)
	if err != nil {
		s.count(op, outcome(err))
		if errors.Is(err, apperr.ErrInsufficientCapacity) {
			s.logger.Info("capacity rejected",
				logx.String("trip_id", string(id)),
				logx.String("op", op),
				logx.Float64("amount_kg", amount),
			)
		}
		return Snapshot{}, err
	}
	s.count(op, "ok")

	snap, err := snapshotOf(t)
	if err != nil {
		return Snapshot{}, err
	}
	s.logger.Debug("capacity changed",
		logx.String("trip_id", string(id)),
		logx.String("op", op),
		logx.Float64("amount_kg", amount),
		logx.Float64("remaining_kg", t.RemainingKg),
	)
	return snap, nil
}

func (s *Service) count(op, result string) {
	if s.metrics != nil {
		s.metrics.Inc(op, result)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, apperr.ErrInsufficientCapacity):
		return "insufficient"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrInvalid):
		return "invalid"
	default:
		return "error"
	}
}
