package synchub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	sendBuffer = 256
)

// WebSocketClient implements the synchub.Client interface over a gorilla
// websocket connection.
type WebSocketClient struct {
	ConnID     string
	UserID     string
	Subscribed []string
	Conn       *websocket.Conn
	Hub        *Manager
	Send       chan Frame

	closeOnce sync.Once
	done      chan struct{}
}

func NewWebSocketClient(connID, userID string, collections []string, conn *websocket.Conn, hub *Manager) *WebSocketClient {
	return &WebSocketClient{
		ConnID:     connID,
		UserID:     userID,
		Subscribed: collections,
		Conn:       conn,
		Hub:        hub,
		Send:       make(chan Frame, sendBuffer),
		done:       make(chan struct{}),
	}
}

func (c *WebSocketClient) GetConnID() string { return c.ConnID }

func (c *WebSocketClient) GetUserID() string { return c.UserID }

func (c *WebSocketClient) Collections() []string { return c.Subscribed }

func (c *WebSocketClient) GetSendChannel() chan<- Frame { return c.Send }

func (c *WebSocketClient) Done() <-chan struct{} { return c.done }

// Run starts the pumps for this connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close signals shutdown, which stops the writePump. The Send channel is
// never closed: a hub callback that copied its subscriber list before the
// unregister may still try to deliver one last frame.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// readPump exists to detect the peer going away and to answer pings; the
// snapshot stream is one-directional and inbound payloads are discarded.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}
	}
}

// writePump drains the Send channel into the websocket and keeps the
// connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case frame := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			data, err := json.Marshal(frame)
			if err != nil {
				log.Printf("Error encoding frame for client %s: %v", c.ConnID, err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
