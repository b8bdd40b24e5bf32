package models

import "time"

// UserRole identifies which dashboard a user is routed to.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
	RoleGuest UserRole = "guest"
)

// Valid reports whether the role is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleGuest:
		return true
	}
	return false
}

// User is the domain view of an authenticated person: the identity record
// held by the auth provider merged with the locally persisted profile
// metadata. Role and room number are never stored by the provider.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          UserRole  `json:"role"`
	RoomNumber    string    `json:"roomNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Status        string    `json:"status"` // "online" or "offline"
	EmailVerified bool      `json:"emailVerified"`
}

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)
