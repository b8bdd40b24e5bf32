package store

// Domain-event topics published on the bus alongside collection snapshots.
// The notification emitter subscribes to these; the store never imports it,
// so a failing or absent emitter cannot affect a mutation.
const (
	EventComplaintAdded = "event:complaint_added"
	EventResponseAdded  = "event:response_added"
	EventUserRegistered = "event:user_registered"
)

// ResponseAdded is the payload for EventResponseAdded.
type ResponseAdded struct {
	ComplaintID string
	RoomNumber  string
	CreatedBy   string
	SenderName  string
}

// UserRegistered is the payload for EventUserRegistered.
type UserRegistered struct {
	UID   string
	Name  string
	Email string
	Role  string
}
