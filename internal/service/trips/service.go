package trips

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
)

// PostTripInput is what a traveler submits when posting a trip.
type PostTripInput struct {
	Traveler     domain.UserID
	From         string
	To           string
	DepartureAt  time.Time
	TotalKg      float64
	Categories   []string
	FlightNumber string
	IsCompanion  bool
}

// Service accepts new trips into the registry and serves trip lookups.
type Service struct {
	registry  tripRegistry
	users     userDirectory
	publisher EventPublisher
	posted    counter
	logger    logx.Logger
	now       func() time.Time
	newTripID func() domain.TripID
}

// NewService creates a trips Service. A nil publisher disables event publishing.
func NewService(registry tripRegistry, users userDirectory, publisher EventPublisher, posted counter, logger logx.Logger) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		registry:  registry,
		users:     users,
		publisher: publisher,
		posted:    posted,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newTripID: func() domain.TripID { return domain.TripID(uuid.NewString()) },
	}
}

// SetNewTripIDForTest overrides trip ID generation for deterministic tests.
func (s *Service) SetNewTripIDForTest(fn func() domain.TripID) {
	if fn != nil {
		s.newTripID = fn
	}
}

// SetNowForTest overrides the creation timestamp clock.
func (s *Service) SetNowForTest(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Post validates the input and inserts a new trip. Either the trip is fully created
// or nothing is stored.
func (s *Service) Post(ctx context.Context, in PostTripInput) (domain.Trip, error) {
	t, err := s.build(in)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := s.registry.Insert(t); err != nil {
		return domain.Trip{}, err
	}
	stored, err := s.registry.Get(t.ID)
	if err != nil {
		return domain.Trip{}, err
	}
	if s.posted != nil {
		s.posted.Inc()
	}

	s.logger.Info("trip posted",
		logx.String("event", "trip_posted"),
		logx.String("trip_id", string(stored.ID)),
		logx.String("traveler", string(stored.Traveler)),
		logx.String("route", stored.From+" -> "+stored.To),
		logx.Time("departure_at", stored.DepartureAt),
		logx.Float64("total_kg", stored.TotalKg),
	)

	// publishing is best effort, the trip is already accepted
	if err := s.publisher.PublishTripPosted(ctx, postedEvent(stored)); err != nil {
		s.logger.Warn("trip event publish failed",
			logx.String("trip_id", string(stored.ID)),
			logx.Err(err),
		)
	}
	return stored, nil
}

// Get returns the trip with the given id.
func (s *Service) Get(_ context.Context, id domain.TripID) (domain.Trip, error) {
	return s.registry.Get(id)
}

// ListByTraveler returns a traveler's own trips in posting order.
func (s *Service) ListByTraveler(_ context.Context, traveler domain.UserID) ([]domain.Trip, error) {
	if strings.TrimSpace(string(traveler)) == "" {
		return nil, fmt.Errorf("%w: traveler id is required", apperr.ErrInvalid)
	}
	return s.registry.ListBy(func(t domain.Trip) bool { return t.Traveler == traveler }), nil
}

func (s *Service) build(in PostTripInput) (domain.Trip, error) {
	traveler := domain.UserID(strings.TrimSpace(string(in.Traveler)))
	if traveler == "" {
		return domain.Trip{}, invalid("traveler id is required")
	}
	if _, err := s.users.Get(traveler); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return domain.Trip{}, invalid("unknown traveler")
		}
		return domain.Trip{}, err
	}

	from, to := domain.NormalizeCity(in.From), domain.NormalizeCity(in.To)
	if from == "" || to == "" || strings.EqualFold(from, to) {
		return domain.Trip{}, invalid("malformed route")
	}
	if in.DepartureAt.IsZero() {
		return domain.Trip{}, invalid("departure time is required")
	}
	if math.IsNaN(in.TotalKg) || math.IsInf(in.TotalKg, 0) || in.TotalKg <= 0 {
		return domain.Trip{}, invalid("capacity must be positive")
	}
	flight, ok := domain.NormalizeFlightNumber(in.FlightNumber)
	if !ok {
		return domain.Trip{}, invalid("invalid flight number")
	}
	categories, err := parseCategories(in.Categories)
	if err != nil {
		return domain.Trip{}, err
	}

	return domain.Trip{
		ID:           s.newTripID(),
		Traveler:     traveler,
		From:         from,
		To:           to,
		DepartureAt:  in.DepartureAt.UTC(),
		TotalKg:      in.TotalKg,
		RemainingKg:  in.TotalKg,
		Categories:   categories,
		FlightNumber: flight,
		IsCompanion:  in.IsCompanion,
		CreatedAt:    s.now(),
	}, nil
}

func parseCategories(raw []string) ([]domain.Category, error) {
	if len(raw) == 0 {
		return nil, invalid("at least one category is required")
	}
	out := make([]domain.Category, 0, len(raw))
	seen := make(map[domain.Category]struct{}, len(raw))
	for _, r := range raw {
		c, ok := domain.ParseCategory(r)
		if !ok {
			return nil, invalid(fmt.Sprintf("unknown category %q", r))
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", apperr.ErrInvalid, msg)
}
