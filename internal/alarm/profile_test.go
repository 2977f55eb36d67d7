package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickflip/internal/audio"
)

func TestDefaultRegistryProfiles(t *testing.T) {
	registry := DefaultRegistry()
	assert.Equal(t, []string{ProfileChime, ProfileClear, ProfileGentle}, registry.IDs())
	assert.Equal(t, ProfileGentle, registry.Fallback())

	gentle, ok := registry.Lookup(ProfileGentle)
	require.True(t, ok)
	require.Len(t, gentle.Tones, 3)
	assert.Equal(t, 880.0, gentle.Tones[0].Frequency)
	assert.Equal(t, 400*time.Millisecond, gentle.Tones[2].Offset)
	assert.Equal(t, 300*time.Millisecond, gentle.Tones[2].Duration)

	clear, ok := registry.Lookup(ProfileClear)
	require.True(t, ok)
	for _, tone := range clear.Tones {
		assert.Equal(t, audio.WaveSquare, tone.Shape)
	}

	chime, ok := registry.Lookup(ProfileChime)
	require.True(t, ok)
	require.Len(t, chime.Tones, 4)
	for _, tone := range chime.Tones {
		assert.Zero(t, tone.Offset, "chime harmonics sound together")
	}
}

func TestResolveFallsBack(t *testing.T) {
	registry := DefaultRegistry()

	_, ok := registry.Lookup("unknown-id")
	assert.False(t, ok)

	profile := registry.Resolve("unknown-id")
	assert.Equal(t, ProfileGentle, profile.ID)
	assert.Equal(t, ProfileClear, registry.Resolve(ProfileClear).ID)
}

func TestLookupReturnsCopy(t *testing.T) {
	registry := DefaultRegistry()
	profile, _ := registry.Lookup(ProfileGentle)
	profile.Tones[0].Frequency = 1

	again, _ := registry.Lookup(ProfileGentle)
	assert.Equal(t, 880.0, again.Tones[0].Frequency)
}

func TestNewRegistryValidation(t *testing.T) {
	beep := Profile{ID: "beep", Tones: []ToneDescriptor{{Tone: WarningChirp}}}

	_, err := NewRegistry("missing", beep)
	assert.Error(t, err)

	_, err = NewRegistry("beep", beep, beep)
	assert.Error(t, err)

	_, err = NewRegistry("", Profile{})
	assert.Error(t, err)

	registry, err := NewRegistry("beep", beep)
	require.NoError(t, err)
	assert.Equal(t, []string{"beep"}, registry.IDs())
}

func TestHapticPattern(t *testing.T) {
	assert.Equal(t, []int{200, 100, 200, 100, 200}, FinishPattern.Milliseconds())
	assert.Equal(t, []int{100, 50, 100}, WarningPattern.Milliseconds())
	assert.Equal(t, 250*time.Millisecond, WarningPattern.Total())
}
