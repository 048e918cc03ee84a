package trips

import (
	"context"
	"time"

	"getmystuff-courier/internal/domain"
)

// PostedEvent is emitted after a trip enters the registry.
type PostedEvent struct {
	TripID      domain.TripID
	Traveler    domain.UserID
	From        string
	To          string
	DepartureAt time.Time
	Categories  []domain.Category
	TotalKg     float64
}

func postedEvent(t domain.Trip) PostedEvent {
	return PostedEvent{
		TripID:      t.ID,
		Traveler:    t.Traveler,
		From:        t.From,
		To:          t.To,
		DepartureAt: t.DepartureAt,
		Categories:  append([]domain.Category(nil), t.Categories...),
		TotalKg:     t.TotalKg,
	}
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct{}

// PublishTripPosted does nothing.
func (NopPublisher) PublishTripPosted(context.Context, PostedEvent) error { return nil }
