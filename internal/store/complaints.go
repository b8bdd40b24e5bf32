package store

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"guestdesk/backend/internal/models"
)

// NewComplaint carries the guest-supplied fields of a submission; the store
// assigns everything else.
type NewComplaint struct {
	RoomNumber string           `json:"roomNumber"`
	GuestName  string           `json:"guestName"`
	Message    string           `json:"message"`
	MediaURL   string           `json:"mediaUrl"`
	MediaKind  models.MediaKind `json:"mediaType"`
	Priority   models.Priority  `json:"priority"`
	CreatedBy  string           `json:"-"`
}

// AddComplaint inserts a new ticket at the front of the collection and
// returns its generated id.
func (s *Service) AddComplaint(in NewComplaint) (string, error) {
	if in.MediaKind != "" && !in.MediaKind.Valid() {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidMediaKind, in.MediaKind)
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidPriority, in.Priority)
	}
	if in.RoomNumber == "" {
		in.RoomNumber = "000"
	}
	if in.CreatedBy == "" {
		in.CreatedBy = "anon"
	}

	lock := s.pubLock(TopicComplaints)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	complaint := models.Complaint{
		ID:         s.newTicketID(),
		RoomNumber: in.RoomNumber,
		GuestName:  in.GuestName,
		Message:    in.Message,
		MediaURL:   in.MediaURL,
		MediaKind:  in.MediaKind,
		Status:     models.StatusSubmitted,
		Priority:   in.Priority,
		CreatedAt:  time.Now(),
		CreatedBy:  in.CreatedBy,
		Responses:  []models.Message{},
	}
	s.complaints = append([]models.Complaint{complaint}, s.complaints...)
	snap := s.complaintsSnapshotLocked()
	s.mu.Unlock()

	s.Bus.Publish(TopicComplaints, snap)
	s.Bus.Publish(EventComplaintAdded, complaint)
	return complaint.ID, nil
}

// UpdateComplaint merges the patch into the matching ticket. An unknown id
// is a silent no-op; the snapshot is published regardless.
func (s *Service) UpdateComplaint(id string, patch models.ComplaintPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	lock := s.pubLock(TopicComplaints)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			patch.Apply(&s.complaints[i])
			break
		}
	}
	snap := s.complaintsSnapshotLocked()
	s.mu.Unlock()

	s.Bus.Publish(TopicComplaints, snap)
	return nil
}

// UpdateComplaintStatus is the common single-field update.
func (s *Service) UpdateComplaintStatus(id string, status models.ComplaintStatus) error {
	return s.UpdateComplaint(id, models.ComplaintPatch{Status: &status})
}

// DeleteComplaint removes the matching ticket. Deletion is permanent and
// idempotent: an unknown id leaves the collection unchanged, and the
// (identical) snapshot is still published.
func (s *Service) DeleteComplaint(id string) {
	lock := s.pubLock(TopicComplaints)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			s.complaints = append(s.complaints[:i:i], s.complaints[i+1:]...)
			break
		}
	}
	snap := s.complaintsSnapshotLocked()
	s.mu.Unlock()

	s.Bus.Publish(TopicComplaints, snap)
}

// AddResponse appends a fully formed message to the ticket's thread. Sender
// identity fields are copied verbatim from the caller. The first reply from
// a non-guest sender advances a "submitted" ticket to "in-progress";
// replies never change "in-progress" or "resolved" tickets.
func (s *Service) AddResponse(complaintID string, msg models.Message) (models.Message, bool) {
	msg.ID = uuid.New().String()
	msg.Timestamp = time.Now()

	var event ResponseAdded
	found := false

	lock := s.pubLock(TopicComplaints)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	for i := range s.complaints {
		c := &s.complaints[i]
		if c.ID != complaintID {
			continue
		}
		c.Responses = append(c.Responses, msg)
		if c.Status == models.StatusSubmitted && msg.SenderRole != models.RoleGuest {
			c.Status = models.StatusInProgress
		}
		event = ResponseAdded{
			ComplaintID: c.ID,
			RoomNumber:  c.RoomNumber,
			CreatedBy:   c.CreatedBy,
			SenderName:  msg.SenderName,
		}
		found = true
		break
	}
	snap := s.complaintsSnapshotLocked()
	s.mu.Unlock()

	s.Bus.Publish(TopicComplaints, snap)
	if found {
		s.Bus.Publish(EventResponseAdded, event)
	}
	return msg, found
}

// Complaints returns a defensive copy of the current collection, newest
// first.
func (s *Service) Complaints() []models.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complaintsSnapshotLocked()
}

func (s *Service) complaintsSnapshotLocked() []models.Complaint {
	snap := make([]models.Complaint, len(s.complaints))
	copy(snap, s.complaints)
	for i := range snap {
		responses := make([]models.Message, len(snap[i].Responses))
		copy(responses, snap[i].Responses)
		snap[i].Responses = responses
	}
	return snap
}

// newTicketID draws from the 4-digit suffix space a bounded number of
// times; when the space is effectively exhausted it falls back to a UUID
// suffix so id generation always terminates.
func (s *Service) newTicketID() string {
	for i := 0; i < 256; i++ {
		id := fmt.Sprintf("TKT-%04d", rand.IntN(10000))
		if !s.ticketIDTakenLocked(id) {
			return id
		}
	}
	return "TKT-" + uuid.New().String()
}

func (s *Service) ticketIDTakenLocked(id string) bool {
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			return true
		}
	}
	return false
}

// SeedDemoComplaint inserts the demo ticket dashboards show on first boot.
func (s *Service) SeedDemoComplaint() {
	lock := s.pubLock(TopicComplaints)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	if len(s.complaints) > 0 {
		s.mu.Unlock()
		return
	}
	now := time.Now()
	s.complaints = []models.Complaint{{
		ID:         "TKT-1001",
		RoomNumber: "402",
		GuestName:  "John Doe",
		Message:    "The air conditioning is making a rattling noise.",
		Status:     models.StatusInProgress,
		Priority:   models.PriorityMedium,
		CreatedAt:  now.Add(-time.Hour),
		CreatedBy:  "guest-1",
		Responses: []models.Message{{
			ID:         uuid.New().String(),
			SenderID:   "staff-1",
			SenderName: "Sarah Staff",
			SenderRole: models.RoleStaff,
			Text:       "We have dispatched maintenance. They will arrive in 10 minutes.",
			Timestamp:  now.Add(-30 * time.Minute),
		}},
	}}
	snap := s.complaintsSnapshotLocked()
	s.mu.Unlock()

	s.Bus.Publish(TopicComplaints, snap)
}
