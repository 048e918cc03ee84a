package domain

// User is a traveler or sender profile. Trips reference users by ID.
type User struct {
	ID             UserID
	DisplayName    string
	IsVerified     bool
	Level          int
	Rating         float64
	TripsCompleted int
	Socials        []SocialProvider
}

// ValidRating checks the 0.0–5.0 rating range.
func ValidRating(r float64) bool {
	return r >= 0 && r <= 5
}
