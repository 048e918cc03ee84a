package notifications

import (
	"context"
	"time"

	"getmystuff-courier/internal/domain"
)

// Seed emits the welcome events every new feed starts with.
func (s *Service) Seed(ctx context.Context) error {
	now := s.now()
	initial := []domain.Notification{
		{
			Type:      domain.NotificationTravel,
			Title:     "New Trip Match!",
			Message:   "A traveller is going from New Delhi to London on your requested date.",
			CreatedAt: now.Add(-2 * time.Minute),
		},
		{
			Type:      domain.NotificationSocial,
			Title:     "LinkedIn Verified",
			Message:   "Your social profile has been successfully linked and verified.",
			CreatedAt: now.Add(-time.Hour),
		},
	}
	// oldest first so the feed keeps emission order
	for i := len(initial) - 1; i >= 0; i-- {
		if _, err := s.Emit(ctx, initial[i]); err != nil {
			return err
		}
	}
	return nil
}
