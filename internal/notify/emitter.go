// Package notify translates domain events into Notification documents.
// Emission is fire-and-forget: nothing here can fail or roll back the
// mutation that triggered it.
package notify

import (
	"fmt"
	"log"

	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/store"
)

// Relay is an optional out-of-band sink for broadcast notifications, e.g.
// a staff Telegram channel.
type Relay interface {
	Broadcast(text string) error
}

// Emitter listens for domain events on the bus and writes notifications
// through the collection store.
type Emitter struct {
	Store  *store.Service
	relay  Relay
	unsubs []func()
}

// NewEmitter wires the emitter to the store's event topics. relay may be
// nil.
func NewEmitter(s *store.Service, relay Relay) *Emitter {
	e := &Emitter{Store: s, relay: relay}
	e.unsubs = append(e.unsubs,
		s.Bus.Subscribe(store.EventComplaintAdded, e.onComplaintAdded),
		s.Bus.Subscribe(store.EventResponseAdded, e.onResponseAdded),
		s.Bus.Subscribe(store.EventUserRegistered, e.onUserRegistered),
	)
	return e
}

// Close releases the emitter's bus subscriptions.
func (e *Emitter) Close() {
	for _, unsubscribe := range e.unsubs {
		unsubscribe()
	}
	e.unsubs = nil
}

func (e *Emitter) onComplaintAdded(data any) {
	c, ok := data.(models.Complaint)
	if !ok {
		return
	}
	text := fmt.Sprintf("New complaint from Room %s", c.RoomNumber)
	e.Store.AddNotification(models.Notification{
		Message:     text,
		ComplaintID: c.ID,
		Kind:        models.NotifyComplaint,
	})
	e.broadcast(text)
}

func (e *Emitter) onResponseAdded(data any) {
	r, ok := data.(store.ResponseAdded)
	if !ok {
		return
	}
	e.Store.AddNotification(models.Notification{
		Message:     fmt.Sprintf("%s replied to your request for Room %s", r.SenderName, r.RoomNumber),
		ComplaintID: r.ComplaintID,
		RecipientID: r.CreatedBy,
		Kind:        models.NotifyReply,
	})
}

func (e *Emitter) onUserRegistered(data any) {
	u, ok := data.(store.UserRegistered)
	if !ok {
		return
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	text := fmt.Sprintf("New User Registration: %s (%s)", name, u.Role)
	e.Store.AddNotification(models.Notification{
		Message: text,
		Kind:    models.NotifyBroadcast,
	})
	e.broadcast(text)
}

func (e *Emitter) broadcast(text string) {
	if e.relay == nil {
		return
	}
	if err := e.relay.Broadcast(text); err != nil {
		// Best effort only.
		log.Printf("WARNING: notification relay failed: %v", err)
	}
}
