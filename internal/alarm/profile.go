package alarm

import (
	"fmt"
	"sort"
	"time"

	"tickflip/internal/audio"
)

// Built-in profile identifiers.
const (
	ProfileGentle = "gentle"
	ProfileClear  = "clear"
	ProfileChime  = "chime"

	DefaultProfile = ProfileGentle
)

// ToneDescriptor places a tone at an offset from the start of a profile.
type ToneDescriptor struct {
	Offset time.Duration
	audio.Tone
}

// Profile is an immutable named sequence of tones.
type Profile struct {
	ID    string
	Tones []ToneDescriptor
}

// WarningChirp is the short beep used for the one-minute warning.
var WarningChirp = audio.Tone{Frequency: 1000, Duration: 50 * time.Millisecond, Peak: 0.15, Shape: audio.WaveSine}

func builtinProfiles() []Profile {
	ms := time.Millisecond
	return []Profile{
		{
			// A5, C6, E6
			ID: ProfileGentle,
			Tones: []ToneDescriptor{
				{Offset: 0, Tone: audio.Tone{Frequency: 880, Duration: 150 * ms, Peak: 0.25, Shape: audio.WaveSine}},
				{Offset: 200 * ms, Tone: audio.Tone{Frequency: 1046.5, Duration: 150 * ms, Peak: 0.25, Shape: audio.WaveSine}},
				{Offset: 400 * ms, Tone: audio.Tone{Frequency: 1318.5, Duration: 300 * ms, Peak: 0.25, Shape: audio.WaveSine}},
			},
		},
		{
			// C5, E5, G5
			ID: ProfileClear,
			Tones: []ToneDescriptor{
				{Offset: 0, Tone: audio.Tone{Frequency: 523.25, Duration: 200 * ms, Peak: 0.35, Shape: audio.WaveSquare}},
				{Offset: 250 * ms, Tone: audio.Tone{Frequency: 659.25, Duration: 200 * ms, Peak: 0.35, Shape: audio.WaveSquare}},
				{Offset: 500 * ms, Tone: audio.Tone{Frequency: 783.99, Duration: 300 * ms, Peak: 0.35, Shape: audio.WaveSquare}},
			},
		},
		{
			// fundamental A4 plus harmonics for a bell
			ID: ProfileChime,
			Tones: []ToneDescriptor{
				{Offset: 0, Tone: audio.Tone{Frequency: 440, Duration: 600 * ms, Peak: 0.3, Shape: audio.WaveSine}},
				{Offset: 0, Tone: audio.Tone{Frequency: 880, Duration: 600 * ms, Peak: 0.2, Shape: audio.WaveSine}},
				{Offset: 0, Tone: audio.Tone{Frequency: 1320, Duration: 600 * ms, Peak: 0.15, Shape: audio.WaveSine}},
				{Offset: 0, Tone: audio.Tone{Frequency: 1760, Duration: 600 * ms, Peak: 0.1, Shape: audio.WaveSine}},
			},
		},
	}
}

// Registry maps profile identifiers to profiles and falls back to a default
// for unknown identifiers.
type Registry struct {
	profiles map[string]Profile
	fallback string
}

// NewRegistry builds a registry. The fallback must name one of profiles.
func NewRegistry(fallback string, profiles ...Profile) (*Registry, error) {
	registry := &Registry{
		profiles: make(map[string]Profile, len(profiles)),
		fallback: fallback,
	}
	for _, profile := range profiles {
		if profile.ID == "" {
			return nil, fmt.Errorf("new registry: profile without id")
		}
		if _, exists := registry.profiles[profile.ID]; exists {
			return nil, fmt.Errorf("new registry: duplicate profile %q", profile.ID)
		}
		tones := append([]ToneDescriptor(nil), profile.Tones...)
		registry.profiles[profile.ID] = Profile{ID: profile.ID, Tones: tones}
	}
	if _, ok := registry.profiles[fallback]; !ok {
		return nil, fmt.Errorf("new registry: fallback profile %q not registered", fallback)
	}
	return registry, nil
}

// DefaultRegistry returns the built-in gentle, clear and chime profiles.
func DefaultRegistry() *Registry {
	registry, err := NewRegistry(DefaultProfile, builtinProfiles()...)
	if err != nil {
		panic(err)
	}
	return registry
}

// Lookup returns the profile registered under id.
func (registry *Registry) Lookup(id string) (Profile, bool) {
	profile, ok := registry.profiles[id]
	if !ok {
		return Profile{}, false
	}
	return profile.clone(), true
}

// Resolve returns the profile registered under id, or the fallback.
func (registry *Registry) Resolve(id string) Profile {
	if profile, ok := registry.Lookup(id); ok {
		return profile
	}
	return registry.profiles[registry.fallback].clone()
}

// Fallback returns the identifier used for unknown profiles.
func (registry *Registry) Fallback() string {
	return registry.fallback
}

// IDs lists the registered identifiers in sorted order.
func (registry *Registry) IDs() []string {
	ids := make([]string, 0, len(registry.profiles))
	for id := range registry.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (profile Profile) clone() Profile {
	return Profile{ID: profile.ID, Tones: append([]ToneDescriptor(nil), profile.Tones...)}
}
