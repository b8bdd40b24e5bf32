package metadata_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
)

func newTestService(t *testing.T) *metadata.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { require.NoError(t, rdb.Close()) })
	return metadata.NewService(rdb)
}

func strptr(s string) *string { return &s }

func roleptr(r models.UserRole) *models.UserRole { return &r }

func TestSave_MergesFieldByField(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Save("uid-1", metadata.Patch{Role: roleptr(models.RoleStaff)}))
	require.NoError(t, svc.Save("uid-1", metadata.Patch{RoomNumber: strptr("12")}))

	got, ok, err := svc.Read("uid-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.RoleStaff, got.Role)
	assert.Equal(t, "12", got.RoomNumber)
}

func TestSave_SequentialEqualsCombined(t *testing.T) {
	svc := newTestService(t)

	// Two sequential partial saves...
	require.NoError(t, svc.Save("seq", metadata.Patch{Role: roleptr(models.RoleStaff)}))
	require.NoError(t, svc.Save("seq", metadata.Patch{RoomNumber: strptr("12")}))

	// ...must equal one combined save.
	require.NoError(t, svc.Save("combined", metadata.Patch{
		Role:       roleptr(models.RoleStaff),
		RoomNumber: strptr("12"),
	}))

	sequential, _, err := svc.Read("seq")
	require.NoError(t, err)
	combined, _, err := svc.Read("combined")
	require.NoError(t, err)
	assert.Equal(t, combined, sequential)
}

func TestSave_LastWriteWinsPerField(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Save("uid-1", metadata.Patch{Name: strptr("First"), RoomNumber: strptr("7")}))
	require.NoError(t, svc.Save("uid-1", metadata.Patch{Name: strptr("Second")}))

	got, _, err := svc.Read("uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
	assert.Equal(t, "7", got.RoomNumber, "untouched field keeps earlier value")
}

func TestRead_MissingEntry(t *testing.T) {
	svc := newTestService(t)

	got, ok, err := svc.Read("nobody")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, metadata.Profile{}, got)
}

func TestReadAll(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Save("uid-1", metadata.Patch{Role: roleptr(models.RoleAdmin)}))
	require.NoError(t, svc.Save("uid-2", metadata.Patch{RoomNumber: strptr("402")}))

	all, err := svc.ReadAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.RoleAdmin, all["uid-1"].Role)
	assert.Equal(t, "402", all["uid-2"].RoomNumber)
}

func TestRememberedEmail_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	email, err := svc.RememberedEmail()
	require.NoError(t, err)
	assert.Empty(t, email, "unset remembered email reads as empty")

	require.NoError(t, svc.SaveRememberedEmail("john@guest.com"))
	email, err = svc.RememberedEmail()
	require.NoError(t, err)
	assert.Equal(t, "john@guest.com", email)

	require.NoError(t, svc.ClearRememberedEmail())
	email, err = svc.RememberedEmail()
	require.NoError(t, err)
	assert.Empty(t, email)
}
