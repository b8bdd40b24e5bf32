package store

import (
	"fmt"
	"sort"
	"time"

	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
)

// Users derives the user directory from the metadata map. Metadata IS the
// source of truth here; there is no separate users table.
func (s *Service) Users() ([]models.User, error) {
	meta, err := s.Meta.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deriveUsersLocked(meta), nil
}

func (s *Service) deriveUsersLocked(meta map[string]metadata.Profile) []models.User {
	users := make([]models.User, 0, len(meta))
	for uid, profile := range meta {
		name := profile.Name
		if name == "" {
			name = "Hotel Guest"
		}
		role := profile.Role
		if role == "" {
			role = models.RoleGuest
		}
		status := models.StatusOffline
		if s.presence[uid] {
			status = models.StatusOnline
		}
		users = append(users, models.User{
			ID:         uid,
			Name:       name,
			Email:      profile.Email,
			Role:       role,
			RoomNumber: profile.RoomNumber,
			CreatedAt:  time.Now(),
			Status:     status,
		})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// UpdateUser writes the patch through the metadata store, then publishes
// the freshly derived directory snapshot.
func (s *Service) UpdateUser(uid string, patch metadata.Patch) error {
	if patch.Role != nil && !patch.Role.Valid() {
		return fmt.Errorf("invalid role %q", *patch.Role)
	}
	if err := s.Meta.Save(uid, patch); err != nil {
		return err
	}
	return s.publishUsers()
}

// SetUserStatus flips the in-memory presence flag for a user and publishes
// the directory. Presence never touches durable metadata.
func (s *Service) SetUserStatus(uid string, online bool) error {
	s.mu.Lock()
	if online {
		s.presence[uid] = true
	} else {
		delete(s.presence, uid)
	}
	s.mu.Unlock()
	return s.publishUsers()
}

func (s *Service) publishUsers() error {
	lock := s.pubLock(TopicUsers)
	lock.Lock()
	defer lock.Unlock()

	// Users reads fresh metadata, so the later of two racing publishes
	// always carries the newer directory.
	users, err := s.Users()
	if err != nil {
		return err
	}
	s.Bus.Publish(TopicUsers, users)
	return nil
}
