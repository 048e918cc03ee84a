package repository

import (
	"fmt"
	"slices"
	"sync"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/domain"
)

// UserDirectory holds traveler and sender profiles referenced by trips.
type UserDirectory struct {
	mu   sync.RWMutex
	byID map[domain.UserID]domain.User
}

// NewUserDirectory creates a directory preloaded with users.
func NewUserDirectory(users ...domain.User) *UserDirectory {
	d := &UserDirectory{byID: make(map[domain.UserID]domain.User, len(users))}
	for _, u := range users {
		d.byID[u.ID] = cloneUser(u)
	}
	return d
}

// Put creates or replaces a user.
func (d *UserDirectory) Put(u domain.User) error {
	if u.ID == "" || !domain.ValidRating(u.Rating) {
		return apperr.ErrInvalid
	}
	for _, s := range u.Socials {
		if !s.Valid() {
			return fmt.Errorf("%w: social provider %q", apperr.ErrInvalid, s)
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID[u.ID] = cloneUser(u)
	return nil
}

// Get returns the user with the given id.
func (d *UserDirectory) Get(id domain.UserID) (domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byID[id]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
	}
	return cloneUser(u), nil
}

func cloneUser(u domain.User) domain.User {
	u.Socials = slices.Clone(u.Socials)
	return u
}
