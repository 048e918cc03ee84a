package repository

import (
	"fmt"
	"iter"
	"sync"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/domain"
)

// TripRegistry is the authoritative in-memory collection of posted trips.
// Trips are never removed; insertion order is preserved. It is safe for concurrent use.
type TripRegistry struct {
	mu    sync.RWMutex
	order []domain.TripID
	byID  map[domain.TripID]*domain.Trip
}

// NewTripRegistry creates an empty registry.
func NewTripRegistry() *TripRegistry {
	return &TripRegistry{byID: make(map[domain.TripID]*domain.Trip)}
}

// Insert adds a trip and initializes its remaining capacity to the total.
func (r *TripRegistry) Insert(t domain.Trip) error {
	if t.ID == "" {
		return fmt.Errorf("%w: empty trip id", apperr.ErrInvalid)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; ok {
		return fmt.Errorf("%w: trip %s already exists", apperr.ErrConflict, t.ID)
	}
	cp := t.Clone()
	cp.RemainingKg = cp.TotalKg
	r.byID[t.ID] = &cp
	r.order = append(r.order, t.ID)
	return nil
}

// Get returns a copy of the trip.
func (r *TripRegistry) Get(id domain.TripID) (domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("%w: trip %s", apperr.ErrNotFound, id)
	}
	return t.Clone(), nil
}

// All yields copies of every trip in insertion order. Each call starts a fresh traversal
// over a snapshot taken when iteration begins.
func (r *TripRegistry) All() iter.Seq[domain.Trip] {
	return func(yield func(domain.Trip) bool) {
		for _, t := range r.snapshot() {
			if !yield(t) {
				return
			}
		}
	}
}

// ListBy returns the trips matching pred, in insertion order.
func (r *TripRegistry) ListBy(pred func(domain.Trip) bool) []domain.Trip {
	out := make([]domain.Trip, 0)
	for t := range r.All() {
		if pred == nil || pred(t) {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of trips.
func (r *TripRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Update applies fn to the stored trip under the write lock. If fn fails the trip
// is left untouched. The updated copy is returned.
func (r *TripRegistry) Update(id domain.TripID, fn func(*domain.Trip) error) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("%w: trip %s", apperr.ErrNotFound, id)
	}
	draft := t.Clone()
	if err := fn(&draft); err != nil {
		return domain.Trip{}, err
	}
	// identity and departure are immutable
	draft.ID, draft.DepartureAt = t.ID, t.DepartureAt
	*t = draft
	return draft.Clone(), nil
}

func (r *TripRegistry) snapshot() []domain.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Trip, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out
}
