package preferences

import (
	"tickflip/internal/alarm"
	"tickflip/internal/core/model"
	"tickflip/internal/core/timer"
)

// View selects how the countdown is drawn.
type View string

const (
	ViewFlip View = "flip"
	ViewPie  View = "pie"
)

// Settings defines editable user preferences.
type Settings struct {
	DefaultMinutes       int
	SoundEnabled         bool
	AlarmProfile         string
	HapticEnabled        bool
	NotificationsEnabled bool
	View                 View
}

// DefaultSettings returns default settings for TickFlip.
func DefaultSettings() Settings {
	return Settings{
		DefaultMinutes:       timer.DefaultMinutes,
		SoundEnabled:         true,
		AlarmProfile:         alarm.DefaultProfile,
		HapticEnabled:        true,
		NotificationsEnabled: false,
		View:                 ViewFlip,
	}
}

// AlarmConfig converts settings to the alarm channel configuration.
func (settings Settings) AlarmConfig() model.AlarmConfig {
	return model.AlarmConfig{
		SoundEnabled:         settings.SoundEnabled,
		Profile:              settings.AlarmProfile,
		HapticEnabled:        settings.HapticEnabled,
		NotificationsEnabled: settings.NotificationsEnabled,
	}
}

// TimerConfig converts settings to the countdown defaults.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{DefaultMinutes: timer.ClampMinutes(settings.DefaultMinutes)}
}
