package repository

import (
	"sync"

	"getmystuff-courier/internal/domain"
)

// NotificationFeed is an append-only event log kept in emission order.
// It is safe for concurrent use.
type NotificationFeed struct {
	mu     sync.RWMutex
	events []domain.Notification
	index  map[string]int
}

// NewNotificationFeed creates an empty feed.
func NewNotificationFeed() *NotificationFeed {
	return &NotificationFeed{index: make(map[string]int)}
}

// Append stores the event as unread. An event whose id is already in the feed
// is dropped and Append reports false.
func (f *NotificationFeed) Append(n domain.Notification) bool {
	n.Unread = true
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.index[n.ID]; dup {
		return false
	}
	if f.index == nil {
		f.index = make(map[string]int)
	}
	f.index[n.ID] = len(f.events)
	f.events = append(f.events, n)
	return true
}

// MarkRead clears the unread flag of the event. Unknown ids are ignored.
// It reports whether an event was found.
func (f *NotificationFeed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.index[id]
	if !ok {
		return false
	}
	f.events[i].Unread = false
	return true
}

// MarkAllRead clears every unread flag and returns how many changed.
func (f *NotificationFeed) MarkAllRead() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for i := range f.events {
		if f.events[i].Unread {
			f.events[i].Unread = false
			n++
		}
	}
	return n
}

// UnreadCount counts unread events.
func (f *NotificationFeed) UnreadCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, e := range f.events {
		if e.Unread {
			n++
		}
	}
	return n
}

// Events returns a copy of the log in emission order.
func (f *NotificationFeed) Events() []domain.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]domain.Notification(nil), f.events...)
}
