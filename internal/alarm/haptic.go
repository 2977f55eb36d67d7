package alarm

import (
	"errors"
	"time"
)

// ErrUnsupported indicates a capability is missing on this platform.
var ErrUnsupported = errors.New("capability unsupported")

// HapticPattern alternates vibrate and pause durations, starting with vibrate.
type HapticPattern []time.Duration

var (
	// FinishPattern is played when the countdown reaches zero.
	FinishPattern = HapticPattern{200 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}
	// WarningPattern is played for the one-minute warning.
	WarningPattern = HapticPattern{100 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}
)

// Milliseconds returns the pattern in the form vibration APIs expect.
func (pattern HapticPattern) Milliseconds() []int {
	values := make([]int, len(pattern))
	for i, step := range pattern {
		values[i] = int(step / time.Millisecond)
	}
	return values
}

// Total returns the time the pattern takes to play.
func (pattern HapticPattern) Total() time.Duration {
	var total time.Duration
	for _, step := range pattern {
		total += step
	}
	return total
}

// Vibrator drives a vibration motor.
type Vibrator interface {
	Vibrate(pattern HapticPattern) error
}
