// Package upload is the file-upload transport boundary: it accepts a blob
// and returns a retrievable URL. Single attempt, no retry contract.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"guestdesk/backend/internal/models"
)

// Service saves uploaded media to disk under a base directory and serves
// it back under a public URL prefix.
type Service struct {
	basePath  string
	urlPrefix string
}

// NewService creates the base directory if missing.
func NewService(basePath, urlPrefix string) (*Service, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("upload base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Service{basePath: basePath, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// BasePath returns the directory uploads are written to, for static
// serving.
func (s *Service) BasePath() string { return s.basePath }

// URLPrefix returns the public route uploads are served under.
func (s *Service) URLPrefix() string { return s.urlPrefix }

// Save writes the blob and returns its URL and detected media kind. Stored
// names are randomized so one guest cannot guess another's uploads.
func (s *Service) Save(filename string, r io.Reader) (string, models.MediaKind, error) {
	ext := strings.ToLower(filepath.Ext(safeFilename(filename)))
	stored := uuid.New().String() + ext
	target := filepath.Join(s.basePath, stored)

	out, err := os.Create(target)
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", "", fmt.Errorf("write file: %w", err)
	}

	return s.urlPrefix + "/" + stored, KindForFilename(filename), nil
}

// KindForFilename classifies an upload by extension; anything unknown is a
// plain file attachment.
func KindForFilename(filename string) models.MediaKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3", ".wav", ".ogg", ".m4a":
		return models.MediaAudio
	case ".mp4", ".mov", ".webm", ".avi":
		return models.MediaVideo
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return models.MediaImage
	default:
		return models.MediaFile
	}
}

func safeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	return name
}
