package model

// AlarmConfig selects which alarm channels fire and how they sound.
type AlarmConfig struct {
	SoundEnabled         bool
	Profile              string
	HapticEnabled        bool
	NotificationsEnabled bool
}

// TimerConfig contains the countdown defaults.
type TimerConfig struct {
	DefaultMinutes int
}
