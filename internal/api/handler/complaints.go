package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/store"
)

// ListComplaints returns the current snapshot, newest first.
func (h *Handler) ListComplaints(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Complaints())
}

// CreateComplaint files a new ticket on behalf of the current user.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req store.NewComplaint
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	settings := h.Store.Settings()
	if req.MediaKind == models.MediaAudio && !settings.AllowAudioUploads {
		c.JSON(http.StatusForbidden, gin.H{"error": "audio uploads are disabled"})
		return
	}
	if req.MediaKind == models.MediaVideo && !settings.AllowVideoUploads {
		c.JSON(http.StatusForbidden, gin.H{"error": "video uploads are disabled"})
		return
	}

	user := currentUser(c)
	req.CreatedBy = user.ID
	if req.GuestName == "" {
		req.GuestName = user.Name
	}
	if req.RoomNumber == "" {
		req.RoomNumber = user.RoomNumber
	}

	id, err := h.Store.AddComplaint(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.Store.RecordActivity(user, models.ActionComplaintSubmitted,
		fmt.Sprintf("Ticket %s filed for Room %s", id, req.RoomNumber))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateComplaint merges a patch into a ticket. Unknown ids are a silent
// no-op; the update surface is idempotent.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	var patch models.ComplaintPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id := c.Param("id")
	if err := h.Store.UpdateComplaint(id, patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if patch.Status != nil {
		user := currentUser(c)
		h.Store.RecordActivity(user, models.ActionStatusUpdated,
			fmt.Sprintf("Ticket %s moved to %s", id, *patch.Status))
	}
	c.Status(http.StatusNoContent)
}

// DeleteComplaint removes a ticket permanently.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	h.Store.DeleteComplaint(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// AddResponse appends a reply to a ticket's thread. Sender identity is
// snapshotted from the current session, never trusted from the body.
func (h *Handler) AddResponse(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}

	user := currentUser(c)
	msg, found := h.Store.AddResponse(c.Param("id"), models.Message{
		SenderID:   user.ID,
		SenderName: user.Name,
		SenderRole: user.Role,
		Text:       req.Text,
	})
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	h.Store.RecordActivity(user, models.ActionReplySent,
		fmt.Sprintf("Reply sent on ticket %s", c.Param("id")))
	c.JSON(http.StatusOK, msg)
}
