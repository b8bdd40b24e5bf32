// Package pubsub implements the observer registry that simulates a push
// backend: every collection mutation is re-delivered synchronously to all
// subscribed observers. It is deliberately decoupled from storage so a real
// push transport can be substituted without touching consumers.
package pubsub

import (
	"log"
	"sync"
)

// Callback receives the full snapshot of a collection on every publish.
// Observers must treat the snapshot as immutable.
type Callback func(data any)

type subscription struct {
	id uint64
	cb Callback
}

// Bus maintains a set of observer callbacks per named collection. It holds
// no collection state itself, only callback references.
type Bus struct {
	mu   sync.Mutex
	seq  uint64
	subs map[string][]subscription
}

func New() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers cb for the topic and returns an unsubscribe function
// that removes exactly that callback. The returned function is idempotent:
// calling it more than once is a no-op after the first call.
func (b *Bus) Subscribe(topic string, cb Callback) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	id := b.seq
	b.subs[topic] = append(b.subs[topic], subscription{id: id, cb: cb})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[topic]
		for i, s := range list {
			if s.id == id {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every currently registered callback for the topic, in
// registration order, passing the same snapshot to all. A panicking
// observer must not prevent delivery to the remaining observers.
func (b *Bus) Publish(topic string, data any) {
	b.mu.Lock()
	list := make([]subscription, len(b.subs[topic]))
	copy(list, b.subs[topic])
	b.mu.Unlock()

	for _, s := range list {
		deliver(topic, s.cb, data)
	}
}

func deliver(topic string, cb Callback, data any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: observer for %q panicked: %v", topic, r)
		}
	}()
	cb(data)
}

// SubscriberCount reports how many observers are registered for the topic.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
