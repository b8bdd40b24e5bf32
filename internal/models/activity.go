package models

import "time"

type ActivityAction string

const (
	ActionRegister           ActivityAction = "register"
	ActionLogin              ActivityAction = "login"
	ActionLogout             ActivityAction = "logout"
	ActionComplaintSubmitted ActivityAction = "complaint_submitted"
	ActionStatusUpdated      ActivityAction = "status_updated"
	ActionReplySent          ActivityAction = "reply_sent"
)

// ActivityEntry is one line of the admin audit trail.
type ActivityEntry struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	UserName  string         `json:"userName"`
	UserRole  UserRole       `json:"userRole"`
	Action    ActivityAction `json:"action"`
	Details   string         `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}
