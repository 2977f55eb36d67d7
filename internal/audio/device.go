package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	DefaultSampleRate = 44100
	DefaultBufferSize = 50 * time.Millisecond
)

// DeviceOptions configures the hardware output.
type DeviceOptions struct {
	SampleRate int
	BufferSize time.Duration
}

// Device is the hardware Sink: an oto context streaming a Mixer. Opening it
// is expensive and oto allows a single context per process, so callers open
// one Device and keep it for the life of the program.
type Device struct {
	mu        sync.Mutex
	context   *oto.Context
	player    *oto.Player
	mixer     *Mixer
	suspended bool
}

// OpenDevice creates the audio context, waits for it to become ready and
// starts streaming silence.
func OpenDevice(ctx context.Context, options DeviceOptions) (*Device, error) {
	if options.SampleRate <= 0 {
		options.SampleRate = DefaultSampleRate
	}
	if options.BufferSize <= 0 {
		options.BufferSize = DefaultBufferSize
	}

	otoContext, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   options.SampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   options.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w: %v", ErrSinkUnavailable, err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return nil, fmt.Errorf("open audio device: %w", ctx.Err())
	}

	mixer := NewMixer(options.SampleRate)
	player := otoContext.NewPlayer(mixer)
	player.Play()

	return &Device{
		context: otoContext,
		player:  player,
		mixer:   mixer,
	}, nil
}

// SampleRate returns frames per second.
func (device *Device) SampleRate() int {
	return device.mixer.SampleRate()
}

// Now returns the mixer clock.
func (device *Device) Now() time.Duration {
	return device.mixer.Now()
}

// Schedule mixes samples into the stream.
func (device *Device) Schedule(at time.Duration, samples []float32) {
	device.mixer.Schedule(at, samples)
}

// Suspended reports whether Suspend was called without a later Resume.
func (device *Device) Suspended() bool {
	device.mu.Lock()
	defer device.mu.Unlock()
	return device.suspended
}

// Suspend pauses the hardware stream.
func (device *Device) Suspend() error {
	device.mu.Lock()
	defer device.mu.Unlock()
	if device.suspended {
		return nil
	}
	if err := device.context.Suspend(); err != nil {
		return fmt.Errorf("suspend audio device: %w", err)
	}
	device.suspended = true
	return nil
}

// Resume restarts a suspended stream.
func (device *Device) Resume() error {
	device.mu.Lock()
	defer device.mu.Unlock()
	if !device.suspended {
		return nil
	}
	if err := device.context.Resume(); err != nil {
		return fmt.Errorf("resume audio device: %w", err)
	}
	if err := device.context.Err(); err != nil {
		return fmt.Errorf("resume audio device: %w", err)
	}
	device.suspended = false
	return nil
}

// Close stops playback and suspends the context.
func (device *Device) Close() error {
	device.mu.Lock()
	defer device.mu.Unlock()
	if err := device.player.Close(); err != nil {
		return fmt.Errorf("close audio player: %w", err)
	}
	if !device.suspended {
		device.suspended = true
		return device.context.Suspend()
	}
	return nil
}
