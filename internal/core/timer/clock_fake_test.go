package timer

import (
	"sync"
	"time"
)

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (timer *manualTimer) Stop() bool {
	wasPending := !timer.stopped && !timer.fired
	timer.stopped = true
	return wasPending
}

// manualClock fires scheduled callbacks only when the test asks it to.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (clock *manualClock) AfterFunc(d time.Duration, f func()) Stopper {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	timer := &manualTimer{delay: d, fn: f}
	clock.timers = append(clock.timers, timer)
	return timer
}

func (clock *manualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// Fire runs the oldest pending callback and reports whether one existed.
func (clock *manualClock) Fire() bool {
	clock.mu.Lock()
	var next *manualTimer
	for _, timer := range clock.timers {
		if !timer.stopped && !timer.fired {
			next = timer
			break
		}
	}
	if next == nil {
		clock.mu.Unlock()
		return false
	}
	next.fired = true
	clock.now = clock.now.Add(time.Second)
	clock.mu.Unlock()

	next.fn()
	return true
}

// FireN fires up to n callbacks and returns how many ran.
func (clock *manualClock) FireN(n int) int {
	count := 0
	for count < n && clock.Fire() {
		count++
	}
	return count
}

func (clock *manualClock) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	pending := 0
	for _, timer := range clock.timers {
		if !timer.stopped && !timer.fired {
			pending++
		}
	}
	return pending
}

func (clock *manualClock) last() *manualTimer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if len(clock.timers) == 0 {
		return nil
	}
	return clock.timers[len(clock.timers)-1]
}
