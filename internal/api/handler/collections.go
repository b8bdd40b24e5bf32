package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Notifications())
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	h.Store.MarkNotificationRead(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Store.Users()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to derive users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser merges a profile patch into the metadata store.
func (h *Handler) UpdateUser(c *gin.Context) {
	var patch metadata.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Store.UpdateUser(c.Param("id"), patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Settings())
}

// UpdateSettings merges a partial branding/toggle update into the
// singleton settings record.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, h.Store.UpdateSettings(patch))
}

func (h *Handler) ListActivity(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Activity())
}
