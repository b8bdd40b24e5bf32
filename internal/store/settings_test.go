package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/store"
)

func TestSettings_Defaults(t *testing.T) {
	s, _ := newTestStore(t)

	settings := s.Settings()
	assert.Equal(t, "Tidé Hotels and Resorts", settings.HotelName)
	assert.Equal(t, "#b45309", settings.PrimaryColor)
	assert.True(t, settings.AllowAudioUploads)
	assert.True(t, settings.AllowVideoUploads)
	assert.True(t, settings.EmailSignupEnabled)
}

func TestUpdateSettings_PartialMergeNeverReplacement(t *testing.T) {
	s, _ := newTestStore(t)

	name := "Grand Budapest"
	off := false
	updated := s.UpdateSettings(models.SettingsPatch{HotelName: &name, AllowAudioUploads: &off})

	assert.Equal(t, "Grand Budapest", updated.HotelName)
	assert.False(t, updated.AllowAudioUploads)
	// Untouched fields keep their values.
	assert.Equal(t, "#b45309", updated.PrimaryColor)
	assert.True(t, updated.AllowVideoUploads)

	color := "#0f172a"
	final := s.UpdateSettings(models.SettingsPatch{PrimaryColor: &color})
	assert.Equal(t, "Grand Budapest", final.HotelName, "earlier merge survives later ones")
	assert.Equal(t, "#0f172a", final.PrimaryColor)
}

func TestUpdateSettings_PublishesSingleton(t *testing.T) {
	s, _ := newTestStore(t)

	var got models.SystemSettings
	s.Bus.Subscribe(store.TopicSettings, func(data any) { got = data.(models.SystemSettings) })

	name := "Grand Budapest"
	require.NotPanics(t, func() { s.UpdateSettings(models.SettingsPatch{HotelName: &name}) })
	assert.Equal(t, "Grand Budapest", got.HotelName)
}
