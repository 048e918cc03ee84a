package handlers

import (
	"context"

	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/repository"
	"getmystuff-courier/internal/service/capacity"
	"getmystuff-courier/internal/service/matching"
	"getmystuff-courier/internal/service/notifications"
	"getmystuff-courier/internal/service/trips"
	"getmystuff-courier/internal/service/users"
)

type tripUsecase interface {
	Post(ctx context.Context, in trips.PostTripInput) (domain.Trip, error)
	Get(ctx context.Context, id domain.TripID) (domain.Trip, error)
	ListByTraveler(ctx context.Context, traveler domain.UserID) ([]domain.Trip, error)
}

// NewTripUsecase wires a trips.Service into a tripUsecase.
func NewTripUsecase(svc *trips.Service) tripUsecase {
	return svc
}

type searchUsecase interface {
	Search(ctx context.Context, q domain.SearchQuery) []domain.Match
}

// NewSearchUsecase wires a matching.Engine into a searchUsecase.
func NewSearchUsecase(e *matching.Engine) searchUsecase {
	return e
}

type capacityUsecase interface {
	Allocate(ctx context.Context, id domain.TripID, amount float64) (capacity.Snapshot, error)
	Release(ctx context.Context, id domain.TripID, amount float64) (capacity.Snapshot, error)
	Current(ctx context.Context, id domain.TripID) (capacity.Snapshot, error)
}

// NewCapacityUsecase wires a capacity.Service into a capacityUsecase.
func NewCapacityUsecase(svc *capacity.Service) capacityUsecase {
	return svc
}

type notificationUsecase interface {
	List(ctx context.Context) []notifications.Item
	MarkRead(ctx context.Context, id string)
	MarkAllRead(ctx context.Context) int
	UnreadCount(ctx context.Context) int
}

// NewNotificationUsecase wires a notifications.Service into a notificationUsecase.
func NewNotificationUsecase(svc *notifications.Service) notificationUsecase {
	return svc
}

type userUsecase interface {
	Get(ctx context.Context, id domain.UserID) (domain.User, error)
	SetSocials(ctx context.Context, id domain.UserID, names []string) (domain.User, error)
}

// NewUserUsecase wires a users.Service into a userUsecase.
func NewUserUsecase(svc *users.Service) userUsecase {
	return svc
}

type travelerLookup interface {
	Get(id domain.UserID) (domain.User, error)
}

// NewTravelerLookup wires the user directory into search results.
func NewTravelerLookup(users *repository.UserDirectory) travelerLookup {
	return users
}
