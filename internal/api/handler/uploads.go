package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/upload"
)

// Upload accepts one multipart file and returns a retrievable URL plus the
// detected media kind. Single attempt; the caller retries manually.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	kind := upload.KindForFilename(fileHeader.Filename)
	settings := h.Store.Settings()
	if kind == models.MediaAudio && !settings.AllowAudioUploads {
		c.JSON(http.StatusForbidden, gin.H{"error": "audio uploads are disabled"})
		return
	}
	if kind == models.MediaVideo && !settings.AllowVideoUploads {
		c.JSON(http.StatusForbidden, gin.H{"error": "video uploads are disabled"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer file.Close()

	url, kind, err := h.Uploads.Save(fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "type": kind})
}
