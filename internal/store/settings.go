package store

import "guestdesk/backend/internal/models"

// Settings returns the current singleton settings record.
func (s *Service) Settings() models.SystemSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings merges the patch into the singleton. There is exactly one
// instance; updates are never wholesale replacement.
func (s *Service) UpdateSettings(patch models.SettingsPatch) models.SystemSettings {
	lock := s.pubLock(TopicSettings)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	patch.Apply(&s.settings)
	snap := s.settings
	s.mu.Unlock()

	s.Bus.Publish(TopicSettings, snap)
	return snap
}
