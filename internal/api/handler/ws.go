package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/store"
	"guestdesk/backend/internal/synchub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards are served from a separate origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and registers it with the sync
// hub. The hub delivers each requested collection's current snapshot
// immediately, then every subsequent publish.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	user, ok := h.userFromRequest(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	requested := strings.Split(c.DefaultQuery("collections", ""), ",")
	collections := allowedCollections(user.Role, requested)
	if len(collections) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "no subscribable collections"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := synchub.NewWebSocketClient(uuid.New().String(), user.ID, collections, conn, h.Hub)

	h.Hub.RegisterCh <- client
	client.Run()
}

// allowedCollections intersects the requested collections with what the
// role may observe. An empty request means "everything visible to me".
func allowedCollections(role models.UserRole, requested []string) []string {
	visible := map[string]bool{
		store.TopicComplaints:    true,
		store.TopicNotifications: true,
		store.TopicSettings:      true,
	}
	if role == models.RoleAdmin {
		visible[store.TopicUsers] = true
		visible[store.TopicActivity] = true
	}

	var out []string
	empty := true
	for _, name := range requested {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		empty = false
		if visible[name] {
			out = append(out, name)
		}
	}
	if empty {
		for name := range visible {
			out = append(out, name)
		}
	}
	return out
}
