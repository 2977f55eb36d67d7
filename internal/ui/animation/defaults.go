package animation

import "time"

// DefaultConfig returns the alarm overlay pulse timing.
func DefaultConfig() Config {
	return Config{
		On: Range{
			Min: 450 * time.Millisecond,
			Max: 550 * time.Millisecond,
		},
		Off: Range{
			Min: 250 * time.Millisecond,
			Max: 350 * time.Millisecond,
		},
		MaxDuration: 2 * time.Minute,
	}
}
