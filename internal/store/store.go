// Package store owns the authoritative in-memory state for every named
// collection. Mutators commit state, then push the full updated snapshot
// through the subscription bus; observers never see a partial write.
package store

import (
	"fmt"
	"sync"

	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/pubsub"
)

// Collection topic names. These double as the websocket subscription keys.
const (
	TopicComplaints    = "complaints"
	TopicNotifications = "notifications"
	TopicSettings      = "settings"
	TopicUsers         = "users"
	TopicActivity      = "activity"
)

// Service is the collection store. It is constructed once at process start
// and injected everywhere; there are no hidden singletons.
type Service struct {
	mu   sync.Mutex
	Bus  *pubsub.Bus
	Meta metadata.Store

	// One publish lock per collection, held across snapshot computation
	// and bus delivery. Mutators on the same collection therefore publish
	// in commit order, and OnSnapshot cannot lose a mutation that lands
	// while it registers. s.mu is never held while publishing, so
	// observers may call back into the store (the notification emitter
	// does, on a different collection's lock).
	pubLocks map[string]*sync.Mutex

	complaints    []models.Complaint
	notifications []models.Notification
	activity      []models.ActivityEntry
	settings      models.SystemSettings
	presence      map[string]bool
}

func NewService(bus *pubsub.Bus, meta metadata.Store) *Service {
	locks := make(map[string]*sync.Mutex)
	for _, topic := range []string{TopicComplaints, TopicNotifications, TopicSettings, TopicUsers, TopicActivity} {
		locks[topic] = &sync.Mutex{}
	}
	return &Service{
		Bus:      bus,
		Meta:     meta,
		pubLocks: locks,
		settings: models.DefaultSettings(),
		presence: make(map[string]bool),
	}
}

func (s *Service) pubLock(topic string) *sync.Mutex { return s.pubLocks[topic] }

// OnSnapshot registers an observer for a collection and delivers the
// current snapshot before returning, so subscribers never render an empty
// initial state. Registration holds the collection's publish lock, which
// guarantees the observer sees every publish that commits after its
// initial snapshot. The returned function unsubscribes.
func (s *Service) OnSnapshot(topic string, cb pubsub.Callback) (func(), error) {
	lock, ok := s.pubLocks[topic]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", topic)
	}
	lock.Lock()
	defer lock.Unlock()

	unsubscribe := s.Bus.Subscribe(topic, cb)
	snap, err := s.Snapshot(topic)
	if err != nil {
		unsubscribe()
		return nil, err
	}
	cb(snap)
	return unsubscribe, nil
}

// Snapshot returns the current contents of a named collection.
func (s *Service) Snapshot(topic string) (any, error) {
	switch topic {
	case TopicComplaints:
		return s.Complaints(), nil
	case TopicNotifications:
		return s.Notifications(), nil
	case TopicSettings:
		return s.Settings(), nil
	case TopicUsers:
		return s.Users()
	case TopicActivity:
		return s.Activity(), nil
	}
	return nil, fmt.Errorf("unknown collection %q", topic)
}
