//go:generate mockgen -destination=mocks_test.go -package=trips getmystuff-courier/internal/service/trips EventPublisher

package trips

import (
	"context"

	"getmystuff-courier/internal/domain"
)

// EventPublisher announces accepted trips to external subscribers.
type EventPublisher interface {
	PublishTripPosted(ctx context.Context, e PostedEvent) error
}

type tripRegistry interface {
	Insert(t domain.Trip) error
	Get(id domain.TripID) (domain.Trip, error)
	ListBy(pred func(domain.Trip) bool) []domain.Trip
}

type userDirectory interface {
	Get(id domain.UserID) (domain.User, error)
}

type counter interface {
	Inc()
}
