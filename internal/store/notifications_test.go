package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/store"
)

func TestAddNotification_AssignsFieldsAndPrepends(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.AddNotification(models.Notification{Message: "older"})
	second := s.AddNotification(models.Notification{
		Message:     "New complaint from Room 402",
		ComplaintID: "TKT-1001",
		Kind:        models.NotifyComplaint,
	})

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.NotifyBroadcast, first.Kind, "kind defaults to broadcast")
	assert.False(t, second.Read)

	snap := s.Notifications()
	require.Len(t, snap, 2)
	assert.Equal(t, second.ID, snap[0].ID)
}

func TestMarkNotificationRead(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.AddNotification(models.Notification{Message: "hello"})

	s.MarkNotificationRead(n.ID)
	assert.True(t, s.Notifications()[0].Read)

	// Unknown ids are a silent no-op that still republishes.
	publishes := 0
	s.Bus.Subscribe(store.TopicNotifications, func(any) { publishes++ })
	assert.NotPanics(t, func() { s.MarkNotificationRead("missing") })
	assert.Equal(t, 1, publishes)
}
