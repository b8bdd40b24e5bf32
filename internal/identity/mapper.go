// Package identity translates the provider's opaque identity handle plus
// the locally persisted metadata into a domain User.
package identity

import (
	"strings"

	"guestdesk/backend/internal/auth"
	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
)

// Bootstrap is the seed-role policy: before any metadata exists, these two
// email addresses map to elevated roles so an operator can get in at all.
// Either field may be empty to disable that override.
type Bootstrap struct {
	AdminEmail string
	StaffEmail string
}

// Mapper derives domain users. Map is pure given its two inputs; the only
// configuration is the bootstrap policy fixed at construction.
type Mapper struct {
	bootstrap Bootstrap
}

func NewMapper(b Bootstrap) *Mapper {
	return &Mapper{bootstrap: b}
}

// Map produces the domain User for an identity handle given the current
// metadata snapshot. A nil handle means signed out and maps to nil.
func (m *Mapper) Map(ident *auth.Identity, meta map[string]metadata.Profile) *models.User {
	if ident == nil {
		return nil
	}

	profile := meta[ident.UID]

	role := profile.Role
	if role == "" {
		role = models.RoleGuest
	}
	switch {
	case m.bootstrap.AdminEmail != "" && strings.EqualFold(ident.Email, m.bootstrap.AdminEmail):
		role = models.RoleAdmin
	case m.bootstrap.StaffEmail != "" && strings.EqualFold(ident.Email, m.bootstrap.StaffEmail):
		role = models.RoleStaff
	}

	name := profile.Name
	if name == "" {
		name = ident.DisplayName
	}
	if name == "" {
		name = localPart(ident.Email)
	}

	return &models.User{
		ID:            ident.UID,
		Name:          name,
		Email:         ident.Email,
		Role:          role,
		RoomNumber:    profile.RoomNumber,
		CreatedAt:     ident.CreatedAt,
		Status:        models.StatusOnline,
		EmailVerified: ident.EmailVerified,
	}
}

// HasAdmin reports whether any admin exists in the metadata snapshot,
// counting the bootstrap admin email as present.
func (m *Mapper) HasAdmin(meta map[string]metadata.Profile) bool {
	for _, profile := range meta {
		if profile.Role == models.RoleAdmin {
			return true
		}
		if m.bootstrap.AdminEmail != "" && strings.EqualFold(profile.Email, m.bootstrap.AdminEmail) {
			return true
		}
	}
	return false
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
