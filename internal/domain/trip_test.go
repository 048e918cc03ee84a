package domain

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"getmystuff-courier/internal/apperr"
)

func newTrip(total float64) Trip {
	return Trip{ID: "t1", TotalKg: total, RemainingKg: total, DepartureAt: baseNow}
}

func TestTrip_Allocate_ThenInsufficient(t *testing.T) {
	t.Parallel()

	tr := newTrip(5)
	require.NoError(t, tr.Allocate(3))
	require.Equal(t, 2.0, tr.RemainingKg)

	err := tr.Allocate(3)
	require.ErrorIs(t, err, apperr.ErrInsufficientCapacity)
	require.Equal(t, 2.0, tr.RemainingKg, "failed allocate must not clamp")
}

func TestTrip_Allocate_RejectsNonPositive(t *testing.T) {
	t.Parallel()

	tr := newTrip(5)
	for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		require.ErrorIs(t, tr.Allocate(amount), apperr.ErrInvalid)
		require.ErrorIs(t, tr.Release(amount), apperr.ErrInvalid)
	}
	require.Equal(t, 5.0, tr.RemainingKg)
}

func TestTrip_Release_ClampsToTotal(t *testing.T) {
	t.Parallel()

	tr := newTrip(10)
	require.NoError(t, tr.Allocate(4))
	require.NoError(t, tr.Release(100))
	require.Equal(t, 10.0, tr.RemainingKg)
}

func TestTrip_AllocateRelease_RoundTrip(t *testing.T) {
	t.Parallel()

	tr := newTrip(10)
	require.NoError(t, tr.Allocate(2.5))
	before := tr.RemainingKg
	require.NoError(t, tr.Allocate(4))
	require.NoError(t, tr.Release(4))
	require.InDelta(t, before, tr.RemainingKg, 1e-9)
}

func TestTrip_Allocate_ExactRemainderAfterFractions(t *testing.T) {
	t.Parallel()

	tr := newTrip(0.3)
	require.NoError(t, tr.Allocate(0.1))
	require.Equal(t, 0.2, tr.RemainingKg)
	require.NoError(t, tr.Allocate(0.2))
	require.Zero(t, tr.RemainingKg)
	require.ErrorIs(t, tr.Allocate(0.001), apperr.ErrInsufficientCapacity)

	require.NoError(t, tr.Release(0.1))
	require.NoError(t, tr.Release(0.2))
	require.Equal(t, 0.3, tr.RemainingKg)
}

func TestTrip_RandomSequence_KeepsBounds(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(7))
	tr := newTrip(15)
	for i := 0; i < 1000; i++ {
		amount := rnd.Float64()*6 + 0.01
		if rnd.Intn(2) == 0 {
			_ = tr.Allocate(amount)
		} else {
			_ = tr.Release(amount)
		}
		require.GreaterOrEqual(t, tr.RemainingKg, 0.0)
		require.LessOrEqual(t, tr.RemainingKg, tr.TotalKg)
	}
}

func TestTrip_RemainingFraction(t *testing.T) {
	t.Parallel()

	tr := newTrip(8)
	require.NoError(t, tr.Allocate(2))
	f, err := tr.RemainingFraction()
	require.NoError(t, err)
	require.InDelta(t, 0.75, f, 1e-9)

	_, err = Trip{}.RemainingFraction()
	require.ErrorIs(t, err, apperr.ErrDivisionUndefined)
}

func TestTrip_CloneDetachesCategories(t *testing.T) {
	t.Parallel()

	tr := Trip{Categories: []Category{CategoryFood}}
	cp := tr.Clone()
	cp.Categories[0] = CategoryGifts
	require.Equal(t, CategoryFood, tr.Categories[0])
	require.True(t, tr.Carries(CategoryFood))
	require.False(t, tr.Carries(CategoryGifts))
}

func TestNormalizeFlightNumber(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		want string
		ok   bool
	}{
		"ek202":   {"EK202", true},
		" AI101 ": {"AI101", true},
		"BAW1":    {"BAW1", true},
		"":        {"", true},
		"E2":      {"", false},
		"EK20202": {"", false},
		"1K202":   {"", false},
		"ABCD12":  {"", false},
	}
	for in, tc := range cases {
		got, ok := NormalizeFlightNumber(in)
		require.Equal(t, tc.ok, ok, in)
		require.Equal(t, tc.want, got, in)
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	c, ok := ParseCategory(" electronics ")
	require.True(t, ok)
	require.Equal(t, CategoryElectronics, c)

	_, ok = ParseCategory("weapons")
	require.False(t, ok)
	require.Len(t, Categories(), 6)
	require.False(t, Category("Pets").Valid())
}

func TestParseSocialProvider(t *testing.T) {
	t.Parallel()

	p, ok := ParseSocialProvider("LinkedIn")
	require.True(t, ok)
	require.Equal(t, SocialLinkedIn, p)

	_, ok = ParseSocialProvider("myspace")
	require.False(t, ok)
}

func TestRelativeTime(t *testing.T) {
	t.Parallel()

	require.Equal(t, "just now", RelativeTime(baseNow, baseNow.Add(10*time.Second)))
	require.Equal(t, "2 mins ago", RelativeTime(baseNow, baseNow.Add(2*time.Minute)))
	require.Equal(t, "1 hour ago", RelativeTime(baseNow, baseNow.Add(time.Hour)))
	require.Equal(t, "3 days ago", RelativeTime(baseNow, baseNow.Add(75*time.Hour)))
}
