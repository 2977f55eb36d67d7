package timer

import "time"

// State is the coarse countdown mode derived from a Snapshot.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// EventType defines the type of Engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventWarning     EventType = "warning"
	EventFinished    EventType = "finished"
)

// Event is a countdown update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Snapshot is a read-only view of the countdown.
type Snapshot struct {
	Total     int
	Remaining int
	Running   bool
	Finished  bool
}

// State maps the flags onto a single mode.
func (snapshot Snapshot) State() State {
	switch {
	case snapshot.Finished:
		return StateFinished
	case snapshot.Running:
		return StateRunning
	case snapshot.Remaining < snapshot.Total:
		return StatePaused
	default:
		return StateIdle
	}
}

// Progress returns the elapsed fraction in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.Total <= 0 {
		return 0
	}
	progress := float64(snapshot.Total-snapshot.Remaining) / float64(snapshot.Total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// RemainingDuration returns Remaining as a time.Duration.
func (snapshot Snapshot) RemainingDuration() time.Duration {
	return time.Duration(snapshot.Remaining) * time.Second
}
