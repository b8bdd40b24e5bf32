package synchub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebSocketClient_CloseIsIdempotent(t *testing.T) {
	c := NewWebSocketClient("conn-1", "user-1", []string{"complaints"}, nil, nil)

	c.Close()
	assert.NotPanics(t, func() { c.Close() })

	select {
	case <-c.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestWebSocketClient_SendStaysUsableAfterClose(t *testing.T) {
	c := NewWebSocketClient("conn-1", "user-1", []string{"complaints"}, nil, nil)
	c.Close()

	// A hub callback that copied its subscriber list before the unregister
	// may still attempt one last delivery; that must never panic.
	assert.NotPanics(t, func() {
		select {
		case c.Send <- Frame{Collection: "complaints"}:
		default:
		}
	})
}
