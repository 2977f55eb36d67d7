package audio

import (
	"fmt"
	"math"
)

// WaveShape selects the oscillator waveform.
type WaveShape string

const (
	WaveSine     WaveShape = "sine"
	WaveSquare   WaveShape = "square"
	WaveTriangle WaveShape = "triangle"
	WaveSawtooth WaveShape = "sawtooth"
)

// ParseWaveShape converts a name to a WaveShape.
func ParseWaveShape(name string) (WaveShape, error) {
	switch shape := WaveShape(name); shape {
	case WaveSine, WaveSquare, WaveTriangle, WaveSawtooth:
		return shape, nil
	default:
		return "", fmt.Errorf("unknown wave shape %q", name)
	}
}

// Oscillate returns the unit-amplitude value of shape at the given phase,
// measured in cycles. Sine, triangle and sawtooth start at zero and rise.
func Oscillate(shape WaveShape, phase float64) float64 {
	_, cycle := math.Modf(phase)
	if cycle < 0 {
		cycle++
	}
	switch shape {
	case WaveSquare:
		if cycle < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		switch {
		case cycle < 0.25:
			return 4 * cycle
		case cycle < 0.75:
			return 2 - 4*cycle
		default:
			return 4*cycle - 4
		}
	case WaveSawtooth:
		if cycle < 0.5 {
			return 2 * cycle
		}
		return 2*cycle - 2
	default:
		return math.Sin(2 * math.Pi * cycle)
	}
}
