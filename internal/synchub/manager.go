// Package synchub pushes collection snapshots to connected dashboards over
// websockets. It sits behind the subscription bus: the store publishes,
// the hub fans out, and store consumers never know the transport exists.
package synchub

import (
	"log"

	"guestdesk/backend/internal/store"
)

// Manager owns the set of live connections and their bus subscriptions.
type Manager struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	Store *store.Service

	// Per-connection unsubscribe functions, released on unregister so the
	// bus never keeps a dead dashboard alive.
	unsubs map[string][]func()
}

func NewManager(s *store.Service) *Manager {
	return &Manager{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Store:        s,
		unsubs:       make(map[string][]func()),
	}
}

// Run is the hub dispatcher loop. Start it once as a goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.register(client)
		case client := <-m.UnregisterCh:
			m.unregister(client)
		}
	}
}

func (m *Manager) register(client Client) {
	connID := client.GetConnID()
	if _, ok := m.Clients[connID]; ok {
		return
	}
	m.Clients[connID] = client

	for _, collection := range client.Collections() {
		collection := collection
		unsubscribe, err := m.Store.OnSnapshot(collection, func(data any) {
			select {
			case <-client.Done():
				// Connection already shut down; drop the frame.
			case client.GetSendChannel() <- Frame{Collection: collection, Data: data}:
			default:
				// Client can't keep up; drop the connection rather than
				// block a publish.
				go func() { m.UnregisterCh <- client }()
			}
		})
		if err != nil {
			log.Printf("WARNING: client %s requested unknown collection %q", connID, collection)
			continue
		}
		m.unsubs[connID] = append(m.unsubs[connID], unsubscribe)
	}
	log.Printf("Client %s connected (user %s, %d collections)", connID, client.GetUserID(), len(client.Collections()))
}

func (m *Manager) unregister(client Client) {
	connID := client.GetConnID()
	if _, ok := m.Clients[connID]; !ok {
		return
	}
	for _, unsubscribe := range m.unsubs[connID] {
		unsubscribe()
	}
	delete(m.unsubs, connID)
	delete(m.Clients, connID)
	client.Close()
	log.Printf("Client %s disconnected", connID)
}
