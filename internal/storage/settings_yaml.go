package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tickflip/internal/core/timer"
	"tickflip/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	DefaultMinutes       int    `yaml:"default_minutes"`
	SoundEnabled         *bool  `yaml:"sound_enabled"`
	AlarmProfile         string `yaml:"alarm_profile"`
	HapticEnabled        *bool  `yaml:"haptic_enabled"`
	NotificationsEnabled bool   `yaml:"notifications_enabled"`
	View                 string `yaml:"view"`
}

// LoadSettings reads user preferences from dir/settings.yaml over defaults.
// If the file does not exist, defaults are returned.
func LoadSettings(dir string, defaults preferences.Settings) (preferences.Settings, error) {
	settings := defaults

	rawData, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to dir/settings.yaml.
func SaveSettings(dir string, settings preferences.Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		DefaultMinutes:       settings.DefaultMinutes,
		SoundEnabled:         &settings.SoundEnabled,
		AlarmProfile:         settings.AlarmProfile,
		HapticEnabled:        &settings.HapticEnabled,
		NotificationsEnabled: settings.NotificationsEnabled,
		View:                 string(settings.View),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.DefaultMinutes > 0 {
		settings.DefaultMinutes = timer.ClampMinutes(fileData.DefaultMinutes)
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.AlarmProfile != "" {
		settings.AlarmProfile = fileData.AlarmProfile
	}
	if fileData.HapticEnabled != nil {
		settings.HapticEnabled = *fileData.HapticEnabled
	}
	switch preferences.View(fileData.View) {
	case preferences.ViewFlip, preferences.ViewPie:
		settings.View = preferences.View(fileData.View)
	}

	settings.NotificationsEnabled = fileData.NotificationsEnabled
}
