package store_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/pubsub"
	"guestdesk/backend/internal/store"
)

// newTestStore wires a store against a throwaway redis so metadata-backed
// collections work end to end.
func newTestStore(t *testing.T) (*store.Service, *metadata.Service) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { require.NoError(t, rdb.Close()) })

	meta := metadata.NewService(rdb)
	return store.NewService(pubsub.New(), meta), meta
}
