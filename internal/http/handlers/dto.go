package handlers

import "time"

type postTripRequest struct {
	TravelerID   string    `json:"traveler_id"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	DepartureAt  time.Time `json:"departure_at"`
	TotalKg      float64   `json:"total_kg"`
	Categories   []string  `json:"categories"`
	FlightNumber string    `json:"flight_number,omitempty"`
	IsCompanion  bool      `json:"is_companion,omitempty"`
}

type tripDTO struct {
	ID           string    `json:"id"`
	TravelerID   string    `json:"traveler_id"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	DepartureAt  time.Time `json:"departure_at"`
	TotalKg      float64   `json:"total_kg"`
	RemainingKg  float64   `json:"remaining_kg"`
	Categories   []string  `json:"categories"`
	FlightNumber string    `json:"flight_number,omitempty"`
	IsCompanion  bool      `json:"is_companion"`
	CreatedAt    time.Time `json:"created_at"`
}

type urgencyDTO struct {
	Tier     string `json:"tier"`
	Label    string `json:"label"`
	Priority int    `json:"priority"`
}

type travelerDTO struct {
	ID             string   `json:"id"`
	DisplayName    string   `json:"display_name"`
	IsVerified     bool     `json:"is_verified"`
	Level          int      `json:"level"`
	Rating         float64  `json:"rating"`
	TripsCompleted int      `json:"trips_completed"`
	Socials        []string `json:"socials"`
}

type matchDTO struct {
	Trip              tripDTO      `json:"trip"`
	Urgency           urgencyDTO   `json:"urgency"`
	RemainingFraction *float64     `json:"remaining_fraction,omitempty"`
	Traveler          *travelerDTO `json:"traveler,omitempty"`
}

type capacityRequest struct {
	AmountKg float64 `json:"amount_kg"`
}

type capacityDTO struct {
	TripID            string  `json:"trip_id"`
	TotalKg           float64 `json:"total_kg"`
	RemainingKg       float64 `json:"remaining_kg"`
	RemainingFraction float64 `json:"remaining_fraction"`
}

type notificationDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Time      string    `json:"time"`
	Unread    bool      `json:"unread"`
}

type notificationsDTO struct {
	Items       []notificationDTO `json:"items"`
	UnreadCount int               `json:"unread_count"`
}

type categoriesDTO struct {
	Categories []string `json:"categories"`
}

type socialsRequest struct {
	Socials []string `json:"socials"`
}
