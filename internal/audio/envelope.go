package audio

import "time"

const (
	attackTime  = 10 * time.Millisecond
	releaseTime = 50 * time.Millisecond
)

// Envelope returns the gain at elapsed time into a tone of the given
// duration: linear attack to peak over 10ms, hold, linear release to zero
// over the final 50ms. Tones shorter than the attack plus release ramp up over
// a sixth of their length (at most 10ms) and release for the rest.
func Envelope(elapsed, duration time.Duration, peak float64) float64 {
	if duration <= 0 || elapsed < 0 || elapsed >= duration {
		return 0
	}

	attack, release := attackTime, releaseTime
	if duration < attackTime+releaseTime {
		attack = duration / 6
		if attack > attackTime {
			attack = attackTime
		}
		release = duration - attack
	}

	if elapsed < attack {
		return peak * float64(elapsed) / float64(attack)
	}
	if elapsed < duration-release {
		return peak
	}
	return peak * float64(duration-elapsed) / float64(release)
}
