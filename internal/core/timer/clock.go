package timer

import "time"

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Clock schedules tick callbacks. Tests inject a manual implementation.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Stopper
	Now() time.Time
}

// SystemClock is the Clock backed by the standard library timers.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
