package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/domain"
)

func trip(id string, total float64) domain.Trip {
	return domain.Trip{
		ID:          domain.TripID(id),
		From:        "Dubai",
		To:          "Paris",
		DepartureAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		TotalKg:     total,
		RemainingKg: 0,
		Categories:  []domain.Category{domain.CategoryFood},
	}
}

func TestTripRegistry_Insert_InitializesRemaining(t *testing.T) {
	t.Parallel()

	r := NewTripRegistry()
	require.NoError(t, r.Insert(trip("t1", 15)))

	got, err := r.Get("t1")
	require.NoError(t, err)
	require.Equal(t, 15.0, got.RemainingKg)
}

func TestTripRegistry_Insert_Duplicate(t *testing.T) {
	t.Parallel()

	r := NewTripRegistry()
	require.NoError(t, r.Insert(trip("t1", 5)))
	require.ErrorIs(t, r.Insert(trip("t1", 7)), apperr.ErrConflict)
	require.ErrorIs(t, r.Insert(trip("", 7)), apperr.ErrInvalid)
	require.Equal(t, 1, r.Len())

	got, err := r.Get("t1")
	require.NoError(t, err)
	require.Equal(t, 5.0, got.TotalKg)
}

func TestTripRegistry_Get_NotFound(t *testing.T) {
	t.Parallel()

	_, err := NewTripRegistry().Get("missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTripRegistry_All_InsertionOrderAndRestartable(t *testing.T) {
	t.Parallel()

	r := NewTripRegistry()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, r.Insert(trip(id, 1)))
	}

	collect := func() []domain.TripID {
		var ids []domain.TripID
		for tr := range r.All() {
			ids = append(ids, tr.ID)
		}
		return ids
	}
	require.Equal(t, []domain.TripID{"c", "a", "b"}, collect())
	require.Equal(t, collect(), collect())

	var first domain.TripID
	for tr := range r.All() {
		first = tr.ID
		break
	}
	require.Equal(t, domain.TripID("c"), first)
}

func TestTripRegistry_ListBy_DoesNotMutate(t *testing.T) {
	t.Parallel()

	r := NewTripRegistry()
	require.NoError(t, r.Insert(trip("t1", 3)))
	require.NoError(t, r.Insert(trip("t2", 9)))

	got := r.ListBy(func(tr domain.Trip) bool { return tr.TotalKg > 5 })
	require.Len(t, got, 1)
	require.Equal(t, domain.TripID("t2"), got[0].ID)

	got[0].Categories[0] = domain.CategoryGifts
	stored, err := r.Get("t2")
	require.NoError(t, err)
	require.Equal(t, domain.CategoryFood, stored.Categories[0])

	require.Len(t, r.ListBy(nil), 2)
}

func TestTripRegistry_Update_FailureLeavesTripUntouched(t *testing.T) {
	t.Parallel()

	r := NewTripRegistry()
	require.NoError(t, r.Insert(trip("t1", 5)))

	_, err := r.Update("t1", func(tr *domain.Trip) error {
		tr.RemainingKg = 1
		return errors.New("boom")
	})
	require.Error(t, err)

	got, _ := r.Get("t1")
	require.Equal(t, 5.0, got.RemainingKg)

	_, err = r.Update("missing", func(*domain.Trip) error { return nil })
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTripRegistry_Update_KeepsDepartureImmutable(t *testing.T) {
	t.Parallel()

	r := NewTripRegistry()
	orig := trip("t1", 5)
	require.NoError(t, r.Insert(orig))

	got, err := r.Update("t1", func(tr *domain.Trip) error {
		tr.DepartureAt = tr.DepartureAt.Add(time.Hour)
		return tr.Allocate(2)
	})
	require.NoError(t, err)
	require.True(t, orig.DepartureAt.Equal(got.DepartureAt))
	require.Equal(t, 3.0, got.RemainingKg)
}

func TestTripRegistry_ConcurrentAllocate_NeverOverbooks(t *testing.T) {
	t.Parallel()

	r := NewTripRegistry()
	require.NoError(t, r.Insert(trip("t1", 10)))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Update("t1", func(tr *domain.Trip) error { return tr.Allocate(1) })
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, _ := r.Get("t1")
	require.Equal(t, 10, ok)
	require.Equal(t, 0.0, got.RemainingKg)
}
