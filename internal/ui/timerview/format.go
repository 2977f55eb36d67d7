package timerview

import "fmt"

// FormatRemaining renders seconds as mm:ss. Negative input shows 00:00.
func FormatRemaining(seconds int) string {
	minutes, secs := FlipDigits(seconds)
	return minutes + ":" + secs
}

// FlipDigits splits seconds into the two zero-padded card values.
func FlipDigits(seconds int) (minutes, secs string) {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d", seconds/60), fmt.Sprintf("%02d", seconds%60)
}

// ToggleLabel names the start/pause button for the current state.
func ToggleLabel(running, paused bool) string {
	switch {
	case running:
		return "Pause"
	case paused:
		return "Resume"
	default:
		return "Start"
	}
}
