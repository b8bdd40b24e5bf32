package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/store"
)

func strptr(s string) *string { return &s }

func roleptr(r models.UserRole) *models.UserRole { return &r }

func TestUsers_DerivedFromMetadata(t *testing.T) {
	s, meta := newTestStore(t)

	require.NoError(t, meta.Save("uid-b", metadata.Patch{
		Role:  roleptr(models.RoleStaff),
		Name:  strptr("Sarah Staff"),
		Email: strptr("sarah@hotel.com"),
	}))
	require.NoError(t, meta.Save("uid-a", metadata.Patch{
		RoomNumber: strptr("402"),
		Email:      strptr("john@guest.com"),
	}))

	users, err := s.Users()
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Sorted by uid for deterministic snapshots.
	assert.Equal(t, "uid-a", users[0].ID)
	assert.Equal(t, "Hotel Guest", users[0].Name, "nameless profiles get the placeholder")
	assert.Equal(t, models.RoleGuest, users[0].Role, "role defaults to guest")
	assert.Equal(t, "402", users[0].RoomNumber)
	assert.Equal(t, models.StatusOffline, users[0].Status)

	assert.Equal(t, models.RoleStaff, users[1].Role)
	assert.Equal(t, "Sarah Staff", users[1].Name)
}

func TestUpdateUser_WritesThroughAndPublishesDerivedSnapshot(t *testing.T) {
	s, _ := newTestStore(t)

	var published []models.User
	s.Bus.Subscribe(store.TopicUsers, func(data any) { published = data.([]models.User) })

	require.NoError(t, s.UpdateUser("uid-1", metadata.Patch{
		Role: roleptr(models.RoleStaff),
		Name: strptr("New Hire"),
	}))

	require.Len(t, published, 1)
	assert.Equal(t, "New Hire", published[0].Name)
	assert.Equal(t, models.RoleStaff, published[0].Role)
}

func TestUpdateUser_RejectsUnknownRole(t *testing.T) {
	s, _ := newTestStore(t)

	bogus := models.UserRole("janitor")
	err := s.UpdateUser("uid-1", metadata.Patch{Role: &bogus})
	assert.Error(t, err)
}

func TestSetUserStatus_PresenceMergedIntoDirectory(t *testing.T) {
	s, meta := newTestStore(t)
	require.NoError(t, meta.Save("uid-1", metadata.Patch{Name: strptr("John")}))

	require.NoError(t, s.SetUserStatus("uid-1", true))
	users, err := s.Users()
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnline, users[0].Status)

	require.NoError(t, s.SetUserStatus("uid-1", false))
	users, err = s.Users()
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, users[0].Status)
}
