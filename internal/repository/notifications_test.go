package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/domain"
)

func TestNotificationFeed_MarkAllRead_PreservesOrder(t *testing.T) {
	t.Parallel()

	f := NewNotificationFeed()
	f.Append(domain.Notification{ID: "1"})
	f.Append(domain.Notification{ID: "2"})
	f.Append(domain.Notification{ID: "3"})
	require.True(t, f.MarkRead("2"))
	require.Equal(t, 2, f.UnreadCount())

	require.Equal(t, 2, f.MarkAllRead())
	require.Equal(t, 0, f.UnreadCount())

	events := f.Events()
	require.Len(t, events, 3)
	require.Equal(t, "1", events[0].ID)
	require.Equal(t, "2", events[1].ID)
	require.Equal(t, "3", events[2].ID)
}

func TestNotificationFeed_MarkRead_UnknownIsNoop(t *testing.T) {
	t.Parallel()

	f := NewNotificationFeed()
	f.Append(domain.Notification{ID: "1"})
	require.False(t, f.MarkRead("nope"))
	require.Equal(t, 1, f.UnreadCount())

	require.True(t, f.MarkRead("1"))
	require.True(t, f.MarkRead("1"))
	require.Equal(t, 0, f.UnreadCount())
}

func TestNotificationFeed_AppendForcesUnread(t *testing.T) {
	t.Parallel()

	f := NewNotificationFeed()
	f.Append(domain.Notification{ID: "1", Unread: false})
	require.Equal(t, 1, f.UnreadCount())
}

func TestUserDirectory_PutGet(t *testing.T) {
	t.Parallel()

	d := NewUserDirectory(domain.User{ID: "u1", DisplayName: "Ketan", Rating: 4.8})
	u, err := d.Get("u1")
	require.NoError(t, err)
	require.Equal(t, "Ketan", u.DisplayName)

	_, err = d.Get("u2")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	require.ErrorIs(t, d.Put(domain.User{ID: "u2", Rating: 7}), apperr.ErrInvalid)
	require.ErrorIs(t, d.Put(domain.User{ID: "u2", Socials: []domain.SocialProvider{"myspace"}}), apperr.ErrInvalid)
	require.NoError(t, d.Put(domain.User{ID: "u2", Socials: []domain.SocialProvider{domain.SocialFacebook}}))
}

func TestNotificationFeed_AppendSkipsKnownID(t *testing.T) {
	t.Parallel()

	f := NewNotificationFeed()
	require.True(t, f.Append(domain.Notification{ID: "evt-1", Title: "first"}))
	require.False(t, f.Append(domain.Notification{ID: "evt-1", Title: "again"}))

	require.True(t, f.MarkRead("evt-1"))
	require.Zero(t, f.UnreadCount())
	events := f.Events()
	require.Len(t, events, 1)
	require.Equal(t, "first", events[0].Title)
}
