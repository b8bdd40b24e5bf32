package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"guestdesk/backend/internal/auth"
	"guestdesk/backend/internal/identity"
	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/store"
	"guestdesk/backend/internal/synchub"
	"guestdesk/backend/internal/upload"
)

const userKey = "currentUser"

// Handler holds the wired services behind the HTTP surface.
type Handler struct {
	Store    *store.Service
	Provider *auth.Provider
	Mapper   *identity.Mapper
	Meta     metadata.Store
	Hub      *synchub.Manager
	Uploads  *upload.Service
}

func NewHandler(s *store.Service, p *auth.Provider, m *identity.Mapper, meta metadata.Store, hub *synchub.Manager, uploads *upload.Service) *Handler {
	return &Handler{Store: s, Provider: p, Mapper: m, Meta: meta, Hub: hub, Uploads: uploads}
}

// RegisterRoutes mounts the full API surface.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.RequireAuth(), h.Logout)
	r.GET("/auth/me", h.RequireAuth(), h.Me)
	r.POST("/auth/verify/resend", h.RequireAuth(), h.ResendVerification)
	r.POST("/auth/verify", h.ConfirmVerification)
	r.POST("/auth/password/reset", h.SendPasswordReset)
	r.POST("/auth/password", h.ResetPassword)
	r.GET("/auth/hasadmin", h.HasAdmin)
	r.GET("/auth/remembered", h.RememberedEmail)

	api := r.Group("/api", h.RequireAuth())
	{
		api.GET("/complaints", h.ListComplaints)
		api.POST("/complaints", h.CreateComplaint)
		api.PATCH("/complaints/:id", h.RequireRole(models.RoleStaff, models.RoleAdmin), h.UpdateComplaint)
		api.DELETE("/complaints/:id", h.RequireRole(models.RoleStaff, models.RoleAdmin), h.DeleteComplaint)
		api.POST("/complaints/:id/responses", h.AddResponse)

		api.GET("/notifications", h.ListNotifications)
		api.POST("/notifications/:id/read", h.MarkNotificationRead)

		api.GET("/users", h.RequireRole(models.RoleAdmin), h.ListUsers)
		api.PATCH("/users/:id", h.RequireRole(models.RoleAdmin), h.UpdateUser)

		api.PATCH("/settings", h.RequireRole(models.RoleAdmin), h.UpdateSettings)
		api.GET("/activity", h.RequireRole(models.RoleAdmin), h.ListActivity)

		api.POST("/uploads", h.Upload)
	}

	r.GET("/api/settings", h.GetSettings)
	r.GET("/ws", h.ServeWebSocket)
	r.Static(h.Uploads.URLPrefix(), h.Uploads.BasePath())
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
}

// RequireAuth resolves the bearer token to a domain user via the identity
// mapper and stashes it in the request context.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.userFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. This is route-level gating
// only; the store itself does not enforce authorization.
func (h *Handler) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

func (h *Handler) userFromRequest(c *gin.Context) (models.User, bool) {
	token := bearerToken(c)
	if token == "" {
		return models.User{}, false
	}
	ident, err := h.Provider.VerifyToken(token)
	if err != nil {
		return models.User{}, false
	}
	meta, err := h.Meta.ReadAll()
	if err != nil {
		return models.User{}, false
	}
	user := h.Mapper.Map(ident, meta)
	if user == nil {
		return models.User{}, false
	}
	return *user, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return header[len("Bearer "):]
	}
	// Browsers cannot set headers on websocket upgrades.
	return c.Query("token")
}

func currentUser(c *gin.Context) models.User {
	user, _ := c.Get(userKey)
	u, _ := user.(models.User)
	return u
}
