package synchub_test

import (
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/pubsub"
	"guestdesk/backend/internal/store"
	"guestdesk/backend/internal/synchub"
)

type mockClient struct {
	connID      string
	userID      string
	collections []string
	send        chan synchub.Frame

	closeOnce sync.Once
	closed    chan struct{}
}

func newMockClient(connID string, collections ...string) *mockClient {
	return &mockClient{
		connID:      connID,
		userID:      "user-" + connID,
		collections: collections,
		send:        make(chan synchub.Frame, 16),
		closed:      make(chan struct{}),
	}
}

func (c *mockClient) GetConnID() string { return c.connID }

func (c *mockClient) GetUserID() string { return c.userID }

func (c *mockClient) Collections() []string { return c.collections }

func (c *mockClient) GetSendChannel() chan<- synchub.Frame { return c.send }

func (c *mockClient) Done() <-chan struct{} { return c.closed }

func (c *mockClient) Run() {}

func (c *mockClient) Close() { c.closeOnce.Do(func() { close(c.closed) }) }

func newTestStore(t *testing.T) *store.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { require.NoError(t, rdb.Close()) })
	return store.NewService(pubsub.New(), metadata.NewService(rdb))
}

func startManager(t *testing.T, s *store.Service) *synchub.Manager {
	t.Helper()
	m := synchub.NewManager(s)
	go m.Run()
	return m
}

func waitFrame(t *testing.T, c *mockClient) synchub.Frame {
	t.Helper()
	select {
	case frame := <-c.send:
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a frame")
		return synchub.Frame{}
	}
}

func assertNoFrame(t *testing.T, c *mockClient) {
	t.Helper()
	select {
	case frame := <-c.send:
		t.Fatalf("unexpected frame for %q", frame.Collection)
	case <-time.After(50 * time.Millisecond):
	}
}

func waitClosed(t *testing.T, c *mockClient) {
	t.Helper()
	select {
	case <-c.closed:
	case <-time.After(time.Second):
		t.Fatal("client was never closed")
	}
}

func TestRegister_DeliversInitialSnapshots(t *testing.T) {
	s := newTestStore(t)
	s.SeedDemoComplaint()
	m := startManager(t, s)

	client := newMockClient("conn-1", store.TopicComplaints, store.TopicSettings)
	m.RegisterCh <- client

	first := waitFrame(t, client)
	assert.Equal(t, store.TopicComplaints, first.Collection)
	complaints, ok := first.Data.([]models.Complaint)
	require.True(t, ok)
	require.Len(t, complaints, 1)
	assert.Equal(t, "TKT-1001", complaints[0].ID)

	second := waitFrame(t, client)
	assert.Equal(t, store.TopicSettings, second.Collection)
}

func TestRegister_DeliversSubsequentUpdates(t *testing.T) {
	s := newTestStore(t)
	m := startManager(t, s)

	client := newMockClient("conn-1", store.TopicComplaints)
	m.RegisterCh <- client
	waitFrame(t, client) // initial empty snapshot

	id, err := s.AddComplaint(store.NewComplaint{RoomNumber: "7", Message: "Towels"})
	require.NoError(t, err)

	frame := waitFrame(t, client)
	complaints, ok := frame.Data.([]models.Complaint)
	require.True(t, ok)
	require.Len(t, complaints, 1)
	assert.Equal(t, id, complaints[0].ID)
}

func TestRegister_OnlyRequestedCollections(t *testing.T) {
	s := newTestStore(t)
	m := startManager(t, s)

	client := newMockClient("conn-1", store.TopicNotifications)
	m.RegisterCh <- client
	waitFrame(t, client) // initial snapshot

	_, err := s.AddComplaint(store.NewComplaint{RoomNumber: "7"})
	require.NoError(t, err)
	assertNoFrame(t, client)
}

func TestRegister_SkipsUnknownCollection(t *testing.T) {
	s := newTestStore(t)
	m := startManager(t, s)

	client := newMockClient("conn-1", "bogus", store.TopicSettings)
	m.RegisterCh <- client

	frame := waitFrame(t, client)
	assert.Equal(t, store.TopicSettings, frame.Collection, "known collections still work")
	assertNoFrame(t, client)
}

func TestUnregister_ReleasesSubscriptionsAndClosesClient(t *testing.T) {
	s := newTestStore(t)
	m := startManager(t, s)

	client := newMockClient("conn-1", store.TopicComplaints)
	m.RegisterCh <- client
	waitFrame(t, client)
	require.Equal(t, 1, s.Bus.SubscriberCount(store.TopicComplaints))

	m.UnregisterCh <- client
	waitClosed(t, client)
	assert.Equal(t, 0, s.Bus.SubscriberCount(store.TopicComplaints))

	_, err := s.AddComplaint(store.NewComplaint{RoomNumber: "7"})
	require.NoError(t, err)
	assertNoFrame(t, client)
}

func TestClosedClientFramesAreDropped(t *testing.T) {
	s := newTestStore(t)
	m := startManager(t, s)

	client := newMockClient("conn-1", store.TopicComplaints)
	client.send = make(chan synchub.Frame, 1)
	m.RegisterCh <- client
	require.Eventually(t, func() bool { return len(client.send) == 1 }, time.Second, 5*time.Millisecond)

	// Transport dies before the hub processes the unregister. A publish in
	// that window is dropped on the floor instead of panicking or kicking
	// off a spurious slow-client disconnect.
	client.Close()
	_, err := s.AddComplaint(store.NewComplaint{RoomNumber: "7"})
	require.NoError(t, err)
	assert.Len(t, client.send, 1, "no frame delivered after close")
}

func TestSlowClientIsDropped(t *testing.T) {
	s := newTestStore(t)
	m := startManager(t, s)

	client := newMockClient("conn-1", store.TopicComplaints)
	client.send = make(chan synchub.Frame, 1)
	m.RegisterCh <- client

	// Wait for the initial snapshot to fill the only buffer slot, which
	// also means the bus subscription is in place.
	require.Eventually(t, func() bool { return len(client.send) == 1 }, time.Second, 5*time.Millisecond)

	// The next publish cannot be delivered and the hub drops the connection.
	_, err := s.AddComplaint(store.NewComplaint{RoomNumber: "7"})
	require.NoError(t, err)
	waitClosed(t, client)
}
