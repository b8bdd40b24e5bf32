package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the provider-side credential record. Role and room number are
// deliberately absent: those live in the metadata store.
type Account struct {
	UID           string `gorm:"primaryKey" json:"uid"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"not null" json:"-"`
	DisplayName   string `json:"displayName"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     time.Time
}

// BeforeCreate generates a UID when one was not supplied.
func (a *Account) BeforeCreate(tx *gorm.DB) (err error) {
	if a.UID == "" {
		a.UID = uuid.New().String()
	}
	return
}

// Identity is the opaque authenticated-identity handle handed to the rest
// of the system. A nil *Identity means "signed out".
type Identity struct {
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"displayName"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (a *Account) identity() *Identity {
	return &Identity{
		UID:           a.UID,
		Email:         a.Email,
		DisplayName:   a.DisplayName,
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
	}
}
