package identity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"guestdesk/backend/internal/auth"
	"guestdesk/backend/internal/identity"
	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
)

var bootstrap = identity.Bootstrap{
	AdminEmail: "admin@hotel.com",
	StaffEmail: "staff@hotel.com",
}

func TestMap_NilIdentity(t *testing.T) {
	m := identity.NewMapper(bootstrap)
	assert.Nil(t, m.Map(nil, nil))
}

func TestMap_DefaultsToGuest(t *testing.T) {
	m := identity.NewMapper(bootstrap)

	u := m.Map(&auth.Identity{UID: "uid-1", Email: "john@guest.com"}, nil)
	assert.Equal(t, models.RoleGuest, u.Role)
	assert.Equal(t, "john", u.Name, "name falls back to the email local part")
	assert.Equal(t, models.StatusOnline, u.Status)
}

func TestMap_Deterministic(t *testing.T) {
	m := identity.NewMapper(bootstrap)

	ident := &auth.Identity{UID: "uid-1", Email: "john@guest.com", CreatedAt: time.Unix(100, 0)}
	meta := map[string]metadata.Profile{
		"uid-1": {Role: models.RoleStaff, Name: "John", RoomNumber: "12"},
	}

	first := m.Map(ident, meta)
	second := m.Map(ident, meta)
	assert.Equal(t, first, second)
}

func TestMap_UsesStoredProfile(t *testing.T) {
	m := identity.NewMapper(bootstrap)

	meta := map[string]metadata.Profile{
		"uid-1": {Role: models.RoleStaff, Name: "Maria", RoomNumber: "402"},
	}
	u := m.Map(&auth.Identity{UID: "uid-1", Email: "maria@guest.com"}, meta)

	assert.Equal(t, models.RoleStaff, u.Role)
	assert.Equal(t, "Maria", u.Name)
	assert.Equal(t, "402", u.RoomNumber)
}

func TestMap_BootstrapOverrides(t *testing.T) {
	m := identity.NewMapper(bootstrap)

	// Bootstrap role wins even against stored metadata.
	meta := map[string]metadata.Profile{
		"uid-a": {Role: models.RoleGuest},
	}
	admin := m.Map(&auth.Identity{UID: "uid-a", Email: "Admin@Hotel.com"}, meta)
	assert.Equal(t, models.RoleAdmin, admin.Role, "match is case-insensitive")

	staff := m.Map(&auth.Identity{UID: "uid-b", Email: "staff@hotel.com"}, nil)
	assert.Equal(t, models.RoleStaff, staff.Role)
}

func TestMap_BootstrapDisabledWhenEmpty(t *testing.T) {
	m := identity.NewMapper(identity.Bootstrap{})

	u := m.Map(&auth.Identity{UID: "uid-a", Email: "admin@hotel.com"}, nil)
	assert.Equal(t, models.RoleGuest, u.Role)
}

func TestMap_NameFallbackChain(t *testing.T) {
	m := identity.NewMapper(bootstrap)

	// Profile name beats display name.
	withProfile := m.Map(
		&auth.Identity{UID: "u", Email: "x@y.com", DisplayName: "Display"},
		map[string]metadata.Profile{"u": {Name: "Profile"}},
	)
	assert.Equal(t, "Profile", withProfile.Name)

	// Display name beats the local part.
	withDisplay := m.Map(&auth.Identity{UID: "u", Email: "x@y.com", DisplayName: "Display"}, nil)
	assert.Equal(t, "Display", withDisplay.Name)

	// Address without an @ is used whole.
	odd := m.Map(&auth.Identity{UID: "u", Email: "plainname"}, nil)
	assert.Equal(t, "plainname", odd.Name)
}

func TestMap_PassesThroughIdentityFields(t *testing.T) {
	m := identity.NewMapper(bootstrap)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	u := m.Map(&auth.Identity{
		UID:           "uid-9",
		Email:         "v@guest.com",
		CreatedAt:     created,
		EmailVerified: true,
	}, nil)

	assert.Equal(t, "uid-9", u.ID)
	assert.Equal(t, "v@guest.com", u.Email)
	assert.Equal(t, created, u.CreatedAt)
	assert.True(t, u.EmailVerified)
}

func TestHasAdmin(t *testing.T) {
	m := identity.NewMapper(bootstrap)

	assert.False(t, m.HasAdmin(nil))
	assert.False(t, m.HasAdmin(map[string]metadata.Profile{
		"u": {Role: models.RoleGuest},
	}))
	assert.True(t, m.HasAdmin(map[string]metadata.Profile{
		"u": {Role: models.RoleAdmin},
	}))
	assert.True(t, m.HasAdmin(map[string]metadata.Profile{
		"u": {Role: models.RoleGuest, Email: "ADMIN@hotel.com"},
	}), "bootstrap admin email counts even without the stored role")
}
