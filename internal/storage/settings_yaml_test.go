package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickflip/internal/ui/preferences"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent"), preferences.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tickflip")
	want := preferences.Settings{
		DefaultMinutes:       25,
		SoundEnabled:         false,
		AlarmProfile:         "clear",
		HapticEnabled:        false,
		NotificationsEnabled: true,
		View:                 preferences.ViewPie,
	}

	require.NoError(t, SaveSettings(dir, want))
	got, err := LoadSettings(dir, preferences.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "alarm_profile: chime\ndefault_minutes: 120\nview: spiral\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte(content), 0o644))

	settings, err := LoadSettings(dir, preferences.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, "chime", settings.AlarmProfile)
	assert.Equal(t, 60, settings.DefaultMinutes)
	assert.True(t, settings.SoundEnabled)
	assert.True(t, settings.HapticEnabled)
	assert.Equal(t, preferences.ViewFlip, settings.View)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte("sound_enabled: [\n"), 0o644))

	settings, err := LoadSettings(dir, preferences.DefaultSettings())
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestLoadKeepsSeededDefaults(t *testing.T) {
	defaults := preferences.DefaultSettings()
	defaults.DefaultMinutes = 25

	settings, err := LoadSettings(t.TempDir(), defaults)
	require.NoError(t, err)
	assert.Equal(t, 25, settings.DefaultMinutes)
}
