package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
)

type feed interface {
	Append(n domain.Notification) bool
	MarkRead(id string) bool
	MarkAllRead() int
	UnreadCount() int
	Events() []domain.Notification
}

type typeCounter interface {
	Inc(notificationType string)
}

// Item is a notification prepared for display.
type Item struct {
	domain.Notification
	Ago string
}

// Service owns the notification feed.
type Service struct {
	feed    feed
	emitted typeCounter
	logger  logx.Logger
	now     func() time.Time
	newID   func() string
}

// NewService creates a notifications Service.
func NewService(f feed, emitted typeCounter, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		feed:    f,
		emitted: emitted,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// SetNowForTest overrides the service clock.
func (s *Service) SetNowForTest(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// SetNewIDForTest overrides notification id generation.
func (s *Service) SetNewIDForTest(fn func() string) {
	if fn != nil {
		s.newID = fn
	}
}

// Emit appends an unread event to the feed and returns it as stored.
func (s *Service) Emit(_ context.Context, n domain.Notification) (domain.Notification, error) {
	if !n.Type.Valid() {
		return domain.Notification{}, fmt.Errorf("%w: unknown notification type %q", apperr.ErrInvalid, n.Type)
	}
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return domain.Notification{}, fmt.Errorf("%w: notification title is required", apperr.ErrInvalid)
	}
	if n.ID == "" {
		n.ID = s.newID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	n.Unread = true
	if !s.feed.Append(n) {
		s.logger.Debug("notification already in feed", logx.String("id", n.ID))
		return domain.Notification{}, fmt.Errorf("%w: notification %s", apperr.ErrConflict, n.ID)
	}

	if s.emitted != nil {
		s.emitted.Inc(string(n.Type))
	}
	s.logger.Info("notification emitted",
		logx.String("id", n.ID),
		logx.String("type", string(n.Type)),
		logx.String("title", n.Title),
	)
	return n, nil
}

// MarkRead marks one event read. Unknown ids are ignored.
func (s *Service) MarkRead(_ context.Context, id string) {
	if !s.feed.MarkRead(id) {
		s.logger.Debug("mark read: unknown notification", logx.String("id", id))
	}
}

// MarkAllRead marks every event read and returns how many changed.
func (s *Service) MarkAllRead(_ context.Context) int {
	return s.feed.MarkAllRead()
}

// UnreadCount returns the number of unread events.
func (s *Service) UnreadCount(_ context.Context) int {
	return s.feed.UnreadCount()
}

// List returns events newest first with relative time labels.
func (s *Service) List(_ context.Context) []Item {
	events := s.feed.Events()
	now := s.now()
	out := make([]Item, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		out = append(out, Item{Notification: events[i], Ago: domain.RelativeTime(events[i].CreatedAt, now)})
	}
	return out
}
