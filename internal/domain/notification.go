package domain

import (
	"fmt"
	"time"
)

// NotificationType is the kind of a feed event.
type NotificationType string

// List of notification types
const (
	NotificationTravel NotificationType = "travel"
	NotificationSocial NotificationType = "social"
	NotificationSystem NotificationType = "system"
)

// Valid checks if the NotificationType is known
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTravel, NotificationSocial, NotificationSystem:
		return true
	default:
		return false
	}
}

// Notification is a single feed event.
type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	CreatedAt time.Time
	Unread    bool
}

// RelativeTime renders how long ago the event happened, e.g. "2 mins ago".
func RelativeTime(at, now time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return agoLabel(int(d/time.Minute), "min")
	case d < 24*time.Hour:
		return agoLabel(int(d/time.Hour), "hour")
	default:
		return agoLabel(int(d/(24*time.Hour)), "day")
	}
}

func agoLabel(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
