package domain

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	"getmystuff-courier/internal/apperr"
)

type (
	// TripID is an opaque trip identifier, stable for the trip's lifetime.
	TripID string
	// UserID references a traveler or sender.
	UserID string
)

// Trip is a traveler's offer to carry items on one flight leg.
type Trip struct {
	ID           TripID
	Traveler     UserID
	From         string
	To           string
	DepartureAt  time.Time
	TotalKg      float64
	RemainingKg  float64
	Categories   []Category
	FlightNumber string
	IsCompanion  bool
	CreatedAt    time.Time
}

// Clone returns a deep copy of the trip.
func (t Trip) Clone() Trip {
	cp := t
	cp.Categories = slices.Clone(t.Categories)
	return cp
}

// Carries reports whether the trip accepts the category.
func (t Trip) Carries(c Category) bool {
	return slices.Contains(t.Categories, c)
}

// Allocate reserves amount kilograms of the remaining capacity.
// It never clamps: asking for more than is left fails with ErrInsufficientCapacity.
func (t *Trip) Allocate(amount float64) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount > t.RemainingKg+kgTolerance {
		return fmt.Errorf("%w: requested %.2fkg, remaining %.2fkg", apperr.ErrInsufficientCapacity, amount, t.RemainingKg)
	}
	t.RemainingKg = math.Max(0, roundKg(t.RemainingKg-amount))
	return nil
}

// Release returns amount kilograms to the trip, bounded by the total.
func (t *Trip) Release(amount float64) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	t.RemainingKg = math.Min(t.TotalKg, roundKg(t.RemainingKg+amount))
	return nil
}

// Weights are kept to the gram; float drift below that is ignored.
const (
	kgPrecision = 1000
	kgTolerance = 0.5 / kgPrecision
)

func roundKg(kg float64) float64 {
	return math.Round(kg*kgPrecision) / kgPrecision
}

// RemainingFraction returns remaining/total in [0,1].
func (t Trip) RemainingFraction() (float64, error) {
	if t.TotalKg == 0 {
		return 0, apperr.ErrDivisionUndefined
	}
	return t.RemainingKg / t.TotalKg, nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("%w: amount must be a positive number", apperr.ErrInvalid)
	}
	return nil
}

// reFlightNumber is a regex to validate IATA-style flight numbers
var reFlightNumber = regexp.MustCompile(`^[A-Z]{2,3}[0-9]{1,4}$`)

// NormalizeFlightNumber upper-cases and validates a flight number.
// An empty input is accepted and stays empty.
func NormalizeFlightNumber(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", true
	}
	if !reFlightNumber.MatchString(s) {
		return "", false
	}
	return s, true
}

// NormalizeCity trims and collapses whitespace in a city label.
func NormalizeCity(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
