package store

import (
	"time"

	"github.com/google/uuid"

	"guestdesk/backend/internal/models"
)

// AddNotification inserts a notification at the front of the feed. Kind
// defaults to broadcast; id, read flag and timestamp are assigned here.
func (s *Service) AddNotification(n models.Notification) models.Notification {
	n.ID = uuid.New().String()
	n.Read = false
	n.CreatedAt = time.Now()
	if n.Kind == "" {
		n.Kind = models.NotifyBroadcast
	}

	lock := s.pubLock(TopicNotifications)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	s.notifications = append([]models.Notification{n}, s.notifications...)
	snap := s.notificationsSnapshotLocked()
	s.mu.Unlock()

	s.Bus.Publish(TopicNotifications, snap)
	return n
}

// MarkNotificationRead sets the read flag. Unknown ids are a silent no-op;
// the snapshot is published regardless.
func (s *Service) MarkNotificationRead(id string) {
	lock := s.pubLock(TopicNotifications)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			break
		}
	}
	snap := s.notificationsSnapshotLocked()
	s.mu.Unlock()

	s.Bus.Publish(TopicNotifications, snap)
}

// Notifications returns a defensive copy of the feed, newest first.
func (s *Service) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notificationsSnapshotLocked()
}

func (s *Service) notificationsSnapshotLocked() []models.Notification {
	snap := make([]models.Notification, len(s.notifications))
	copy(snap, s.notifications)
	return snap
}
