package kafka

import (
	"strings"
	"time"

	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/service/trips"
)

// NotificationDTO is a feed event produced by an external service.
type NotificationDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts NotificationDTO to domain.Notification
func ToDomain(dto NotificationDTO) domain.Notification {
	return domain.Notification{
		ID:        strings.TrimSpace(dto.ID),
		Type:      domain.NotificationType(strings.ToLower(strings.TrimSpace(dto.Type))),
		Title:     strings.TrimSpace(dto.Title),
		Message:   strings.TrimSpace(dto.Message),
		CreatedAt: dto.CreatedAt,
	}
}

// TripPostedDTO is the wire form of a trip.posted event.
type TripPostedDTO struct {
	Event       string    `json:"event"`
	TripID      string    `json:"trip_id"`
	Traveler    string    `json:"traveler_id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	DepartureAt time.Time `json:"departure_at"`
	Categories  []string  `json:"categories"`
	TotalKg     float64   `json:"total_kg"`
}

// EventTripPosted names the trip.posted event on the wire.
const EventTripPosted = "trip.posted"

// FromPostedEvent converts trips.PostedEvent to its wire form.
func FromPostedEvent(e trips.PostedEvent) TripPostedDTO {
	cats := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		cats = append(cats, string(c))
	}
	return TripPostedDTO{
		Event:       EventTripPosted,
		TripID:      string(e.TripID),
		Traveler:    string(e.Traveler),
		From:        e.From,
		To:          e.To,
		DepartureAt: e.DepartureAt.UTC(),
		Categories:  cats,
		TotalKg:     e.TotalKg,
	}
}
