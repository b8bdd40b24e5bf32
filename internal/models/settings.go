package models

// SystemSettings is the singleton branding and feature-toggle record.
// Updates are partial merges, never wholesale replacement.
type SystemSettings struct {
	HotelName          string `json:"hotelName"`
	PrimaryColor       string `json:"primaryColor"`
	AllowAudioUploads  bool   `json:"allowAudioUploads"`
	AllowVideoUploads  bool   `json:"allowVideoUploads"`
	EmailSignupEnabled bool   `json:"emailSignupEnabled"`
}

// DefaultSettings returns the branding the system boots with before an
// admin has touched anything.
func DefaultSettings() SystemSettings {
	return SystemSettings{
		HotelName:          "Tidé Hotels and Resorts",
		PrimaryColor:       "#b45309",
		AllowAudioUploads:  true,
		AllowVideoUploads:  true,
		EmailSignupEnabled: true,
	}
}

// SettingsPatch carries a partial settings update. Nil fields keep their
// current value.
type SettingsPatch struct {
	HotelName          *string `json:"hotelName,omitempty"`
	PrimaryColor       *string `json:"primaryColor,omitempty"`
	AllowAudioUploads  *bool   `json:"allowAudioUploads,omitempty"`
	AllowVideoUploads  *bool   `json:"allowVideoUploads,omitempty"`
	EmailSignupEnabled *bool   `json:"emailSignupEnabled,omitempty"`
}

func (p SettingsPatch) Apply(s *SystemSettings) {
	if p.HotelName != nil {
		s.HotelName = *p.HotelName
	}
	if p.PrimaryColor != nil {
		s.PrimaryColor = *p.PrimaryColor
	}
	if p.AllowAudioUploads != nil {
		s.AllowAudioUploads = *p.AllowAudioUploads
	}
	if p.AllowVideoUploads != nil {
		s.AllowVideoUploads = *p.AllowVideoUploads
	}
	if p.EmailSignupEnabled != nil {
		s.EmailSignupEnabled = *p.EmailSignupEnabled
	}
}
