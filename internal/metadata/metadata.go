// Package metadata persists the profile fields the auth provider does not
// hold: role, room number, display name. The map is the source of truth for
// the user directory; there is no separate users table.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"guestdesk/backend/internal/models"
)

const (
	// Fixed namespace for the uid -> profile map.
	metadataKey = "guestdesk:user_metadata"
	// Single remembered login email for the sign-in form.
	rememberedEmailKey = "guestdesk:remembered_email"
)

// Profile holds the locally persisted fields for one identity id.
type Profile struct {
	Role       models.UserRole `json:"role,omitempty"`
	Name       string          `json:"name,omitempty"`
	Email      string          `json:"email,omitempty"`
	RoomNumber string          `json:"roomNumber,omitempty"`
}

// Patch is a partial profile update. Nil fields keep their stored value;
// merges are last-write-wins per field.
type Patch struct {
	Role       *models.UserRole `json:"role,omitempty"`
	Name       *string          `json:"name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	RoomNumber *string          `json:"roomNumber,omitempty"`
}

func (p Patch) apply(dst *Profile) {
	if p.Role != nil {
		dst.Role = *p.Role
	}
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Email != nil {
		dst.Email = *p.Email
	}
	if p.RoomNumber != nil {
		dst.RoomNumber = *p.RoomNumber
	}
}

// Store is the durable key-value boundary for profile metadata.
type Store interface {
	Save(uid string, patch Patch) error
	Read(uid string) (Profile, bool, error)
	ReadAll() (map[string]Profile, error)
	SaveRememberedEmail(email string) error
	ClearRememberedEmail() error
	RememberedEmail() (string, error)
}

// Service implements Store on a redis hash under a fixed namespace.
type Service struct {
	Redis *redis.Client
	Ctx   context.Context
}

func NewService(rdb *redis.Client) *Service {
	return &Service{Redis: rdb, Ctx: context.Background()}
}

// Save merges the patch into the entry for uid, creating it if absent, and
// persists before returning. There is no optimistic-concurrency check.
func (s *Service) Save(uid string, patch Patch) error {
	current, _, err := s.Read(uid)
	if err != nil {
		return err
	}
	patch.apply(&current)

	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode profile for %s: %w", uid, err)
	}
	if err := s.Redis.HSet(s.Ctx, metadataKey, uid, raw).Err(); err != nil {
		return fmt.Errorf("persist profile for %s: %w", uid, err)
	}
	return nil
}

// Read returns the stored profile for uid and whether an entry exists.
func (s *Service) Read(uid string) (Profile, bool, error) {
	raw, err := s.Redis.HGet(s.Ctx, metadataKey, uid).Result()
	if errors.Is(err, redis.Nil) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, false, fmt.Errorf("decode profile for %s: %w", uid, err)
	}
	return p, true, nil
}

// ReadAll returns the full uid -> profile map.
func (s *Service) ReadAll() (map[string]Profile, error) {
	raw, err := s.Redis.HGetAll(s.Ctx, metadataKey).Result()
	if err != nil {
		return nil, err
	}
	all := make(map[string]Profile, len(raw))
	for uid, v := range raw {
		var p Profile
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			return nil, fmt.Errorf("decode profile for %s: %w", uid, err)
		}
		all[uid] = p
	}
	return all, nil
}

func (s *Service) SaveRememberedEmail(email string) error {
	return s.Redis.Set(s.Ctx, rememberedEmailKey, email, 0).Err()
}

func (s *Service) ClearRememberedEmail() error {
	return s.Redis.Del(s.Ctx, rememberedEmailKey).Err()
}

// RememberedEmail returns the stored email or "" when none is set.
func (s *Service) RememberedEmail() (string, error) {
	email, err := s.Redis.Get(s.Ctx, rememberedEmailKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return email, err
}
