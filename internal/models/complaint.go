package models

import (
	"errors"
	"time"
)

type ComplaintStatus string

const (
	StatusSubmitted  ComplaintStatus = "submitted"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type MediaKind string

const (
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
	MediaImage MediaKind = "image"
	MediaFile  MediaKind = "file"
)

func (k MediaKind) Valid() bool {
	switch k {
	case MediaAudio, MediaVideo, MediaImage, MediaFile:
		return true
	}
	return false
}

// Message is a single response on a complaint thread. Sender fields are a
// snapshot taken at send time and do not follow later profile edits.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	SenderRole UserRole  `json:"senderRole"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// Complaint is a guest-submitted service ticket. Responses are kept in
// insertion order, which is also chronological order.
type Complaint struct {
	ID         string          `json:"id"`
	RoomNumber string          `json:"roomNumber"`
	GuestName  string          `json:"guestName,omitempty"`
	Message    string          `json:"message"`
	MediaURL   string          `json:"mediaUrl,omitempty"`
	MediaKind  MediaKind       `json:"mediaType,omitempty"`
	Status     ComplaintStatus `json:"status"`
	Priority   Priority        `json:"priority"`
	CreatedAt  time.Time       `json:"createdAt"`
	CreatedBy  string          `json:"createdBy"`
	Responses  []Message       `json:"responses"`
}

// ComplaintPatch carries the legally mutable fields of a complaint.
// Nil fields are left untouched by a merge.
type ComplaintPatch struct {
	Status     *ComplaintStatus `json:"status,omitempty"`
	Priority   *Priority        `json:"priority,omitempty"`
	GuestName  *string          `json:"guestName,omitempty"`
	RoomNumber *string          `json:"roomNumber,omitempty"`
}

var (
	ErrInvalidStatus    = errors.New("invalid complaint status")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidMediaKind = errors.New("invalid media kind")
)

// Validate rejects patches carrying unknown enum values before any merge.
func (p ComplaintPatch) Validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Apply merges the patch into the complaint, field by field.
func (p ComplaintPatch) Apply(c *Complaint) {
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.GuestName != nil {
		c.GuestName = *p.GuestName
	}
	if p.RoomNumber != nil {
		c.RoomNumber = *p.RoomNumber
	}
}
