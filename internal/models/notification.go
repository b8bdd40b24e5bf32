package models

import "time"

type NotificationKind string

const (
	NotifyComplaint NotificationKind = "complaint"
	NotifyReply     NotificationKind = "reply"
	NotifyBroadcast NotificationKind = "broadcast"
)

// Notification is an ephemeral feed entry consumed by the toast UI.
// An empty RecipientID means the notification is a broadcast to everyone.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipientId,omitempty"`
	ComplaintID string           `json:"complaintId,omitempty"`
	Message     string           `json:"message"`
	Kind        NotificationKind `json:"type"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
}
