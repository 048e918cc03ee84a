package handlers

import (
	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/service/capacity"
	"getmystuff-courier/internal/service/notifications"
	"getmystuff-courier/internal/service/trips"
)

func (r postTripRequest) toInput() trips.PostTripInput {
	return trips.PostTripInput{
		Traveler:     domain.UserID(r.TravelerID),
		From:         r.From,
		To:           r.To,
		DepartureAt:  r.DepartureAt,
		TotalKg:      r.TotalKg,
		Categories:   r.Categories,
		FlightNumber: r.FlightNumber,
		IsCompanion:  r.IsCompanion,
	}
}

func tripToResponse(t domain.Trip) tripDTO {
	cats := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		cats = append(cats, string(c))
	}
	return tripDTO{
		ID:           string(t.ID),
		TravelerID:   string(t.Traveler),
		From:         t.From,
		To:           t.To,
		DepartureAt:  t.DepartureAt,
		TotalKg:      t.TotalKg,
		RemainingKg:  t.RemainingKg,
		Categories:   cats,
		FlightNumber: t.FlightNumber,
		IsCompanion:  t.IsCompanion,
		CreatedAt:    t.CreatedAt,
	}
}

func tripsToResponse(list []domain.Trip) []tripDTO {
	out := make([]tripDTO, 0, len(list))
	for _, t := range list {
		out = append(out, tripToResponse(t))
	}
	return out
}

func userToResponse(u domain.User) *travelerDTO {
	socials := make([]string, 0, len(u.Socials))
	for _, s := range u.Socials {
		socials = append(socials, string(s))
	}
	return &travelerDTO{
		ID:             string(u.ID),
		DisplayName:    u.DisplayName,
		IsVerified:     u.IsVerified,
		Level:          u.Level,
		Rating:         u.Rating,
		TripsCompleted: u.TripsCompleted,
		Socials:        socials,
	}
}

func matchToResponse(m domain.Match) matchDTO {
	out := matchDTO{
		Trip: tripToResponse(m.Trip),
		Urgency: urgencyDTO{
			Tier:     string(m.Urgency.Tier),
			Label:    m.Urgency.Label,
			Priority: m.Urgency.Priority,
		},
	}
	if f, err := m.Trip.RemainingFraction(); err == nil {
		out.RemainingFraction = &f
	}
	return out
}

func snapshotToResponse(s capacity.Snapshot) capacityDTO {
	return capacityDTO{
		TripID:            string(s.TripID),
		TotalKg:           s.TotalKg,
		RemainingKg:       s.RemainingKg,
		RemainingFraction: s.Fraction,
	}
}

func itemToResponse(it notifications.Item) notificationDTO {
	return notificationDTO{
		ID:        it.ID,
		Type:      string(it.Type),
		Title:     it.Title,
		Message:   it.Message,
		CreatedAt: it.CreatedAt,
		Time:      it.Ago,
		Unread:    it.Unread,
	}
}
