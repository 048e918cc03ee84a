package users

import (
	"context"
	"fmt"
	"slices"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
)

type directory interface {
	Get(id domain.UserID) (domain.User, error)
	Put(u domain.User) error
}

// Service serves traveler and sender profiles.
type Service struct {
	dir    directory
	logger logx.Logger
}

// NewService creates a users Service.
func NewService(dir directory, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{dir: dir, logger: logger}
}

// Get returns the profile with the given id.
func (s *Service) Get(_ context.Context, id domain.UserID) (domain.User, error) {
	return s.dir.Get(id)
}

// SetSocials replaces the linked social providers of a profile. Names are
// matched case-insensitively and duplicates collapse.
func (s *Service) SetSocials(_ context.Context, id domain.UserID, names []string) (domain.User, error) {
	socials := make([]domain.SocialProvider, 0, len(names))
	for _, name := range names {
		p, ok := domain.ParseSocialProvider(name)
		if !ok {
			return domain.User{}, fmt.Errorf("%w: unknown social provider %q", apperr.ErrInvalid, name)
		}
		if !slices.Contains(socials, p) {
			socials = append(socials, p)
		}
	}

	u, err := s.dir.Get(id)
	if err != nil {
		return domain.User{}, err
	}
	u.Socials = socials
	if err := s.dir.Put(u); err != nil {
		return domain.User{}, err
	}

	s.logger.Info("profile socials updated",
		logx.String("user_id", string(id)),
		logx.Int("linked", len(socials)),
	)
	return u, nil
}
