package store

import (
	"time"

	"github.com/google/uuid"

	"guestdesk/backend/internal/models"
)

// RecordActivity prepends an entry to the audit trail. Recording is
// advisory: it has no return value and cannot fail a triggering operation.
func (s *Service) RecordActivity(user models.User, action models.ActivityAction, details string) {
	entry := models.ActivityEntry{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		UserName:  user.Name,
		UserRole:  user.Role,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}

	lock := s.pubLock(TopicActivity)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	s.activity = append([]models.ActivityEntry{entry}, s.activity...)
	snap := s.activitySnapshotLocked()
	s.mu.Unlock()

	s.Bus.Publish(TopicActivity, snap)
}

// Activity returns a defensive copy of the audit trail, newest first.
func (s *Service) Activity() []models.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activitySnapshotLocked()
}

func (s *Service) activitySnapshotLocked() []models.ActivityEntry {
	snap := make([]models.ActivityEntry, len(s.activity))
	copy(snap, s.activity)
	return snap
}
