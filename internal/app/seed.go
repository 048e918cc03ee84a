package app

import (
	"context"
	"fmt"
	"time"

	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/repository"
	"getmystuff-courier/internal/service/capacity"
	"getmystuff-courier/internal/service/notifications"
	"getmystuff-courier/internal/service/trips"
)

var demoUsers = []domain.User{
	{
		ID: "ketan", DisplayName: "Ketan Saxena", IsVerified: true, Level: 4, Rating: 4.8, TripsCompleted: 12,
		Socials: []domain.SocialProvider{domain.SocialLinkedIn, domain.SocialInstagram},
	},
	{
		ID: "priyesha", DisplayName: "Priyesha Yadav", IsVerified: true, Level: 5, Rating: 4.9, TripsCompleted: 24,
		Socials: []domain.SocialProvider{domain.SocialLinkedIn, domain.SocialFacebook, domain.SocialInstagram},
	},
	{
		ID: "rahul", DisplayName: "Rahul Mehta", IsVerified: true, Level: 3, Rating: 4.5, TripsCompleted: 5,
		Socials: []domain.SocialProvider{domain.SocialFacebook},
	},
}

type demoTrip struct {
	in     trips.PostTripInput
	leaves time.Duration
	booked float64
}

func demoTrips() []demoTrip {
	return []demoTrip{
		{
			in: trips.PostTripInput{
				Traveler: "ketan", From: "New Delhi", To: "London", TotalKg: 5,
				Categories: []string{"Documents", "Electronics"}, FlightNumber: "AI101", IsCompanion: true,
			},
			leaves: 2 * time.Hour, booked: 1.5,
		},
		{
			in: trips.PostTripInput{
				Traveler: "priyesha", From: "Mumbai", To: "New York", TotalKg: 10,
				Categories: []string{"Clothing", "Gifts"}, FlightNumber: "EK202",
			},
			leaves: 10 * time.Hour, booked: 2,
		},
		{
			in: trips.PostTripInput{
				Traveler: "rahul", From: "Dubai", To: "Paris", TotalKg: 15,
				Categories: []string{"Food", "Gifts"},
			},
			leaves: 55 * time.Hour, booked: 3,
		},
	}
}

// seedDemo loads the demo marketplace through the regular services.
func seedDemo(
	ctx context.Context,
	now time.Time,
	users *repository.UserDirectory,
	tripSvc *trips.Service,
	ledger *capacity.Service,
	feed *notifications.Service,
) error {
	for _, u := range demoUsers {
		if err := users.Put(u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for _, d := range demoTrips() {
		in := d.in
		in.DepartureAt = now.Add(d.leaves)
		t, err := tripSvc.Post(ctx, in)
		if err != nil {
			return fmt.Errorf("seed trip %s -> %s: %w", in.From, in.To, err)
		}
		if _, err := ledger.Allocate(ctx, t.ID, d.booked); err != nil {
			return fmt.Errorf("seed booking on %s: %w", t.ID, err)
		}
	}
	return feed.Seed(ctx)
}
