package timer

import (
	"sync"
	"time"
)

const (
	// MinMinutes and MaxMinutes bound Configure.
	MinMinutes = 1
	MaxMinutes = 60

	// DefaultMinutes is the duration a new Engine starts with.
	DefaultMinutes = 5

	warningThreshold = 60

	// MinTickInterval keeps the countdown at one decrement per elapsed second at most.
	MinTickInterval = time.Second
)

// Config contains runtime options for Engine.
type Config struct {
	TickInterval   time.Duration
	DefaultMinutes int
	Clock          Clock
}

// Engine is the countdown state machine.
type Engine struct {
	mu           sync.Mutex
	options      Config
	total        int
	remaining    int
	running      bool
	finished     bool
	warningFired bool
	generation   uint64
	pending      Stopper
	onWarning    func()
	onFinished   func()
	events       []chan Event
	closed       bool
}

// New creates an idle Engine holding the configured default duration.
func New(options Config) *Engine {
	if options.TickInterval < MinTickInterval {
		options.TickInterval = MinTickInterval
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.DefaultMinutes == 0 {
		options.DefaultMinutes = DefaultMinutes
	}

	engine := &Engine{options: options}
	engine.configureSecondsLocked(ClampMinutes(options.DefaultMinutes) * 60)
	return engine
}

// ClampMinutes forces minutes into [MinMinutes, MaxMinutes].
func ClampMinutes(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}

// OnFinished registers the callback for the transition to finished. Like
// OnWarning it runs after the engine lock is released, so it cannot be lost
// to a full subscriber buffer.
func (engine *Engine) OnFinished(handler func()) {
	engine.mu.Lock()
	engine.onFinished = handler
	engine.mu.Unlock()
}

// OnWarning registers the one-minute-warning callback. It runs on the
// ticking goroutine after the engine lock is released.
func (engine *Engine) OnWarning(handler func()) {
	engine.mu.Lock()
	engine.onWarning = handler
	engine.mu.Unlock()
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	if engine.closed {
		close(ch)
	} else {
		engine.events = append(engine.events, ch)
	}
	engine.mu.Unlock()
	return ch
}

// Snapshot returns the current countdown view.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Configure sets a new duration in minutes, clamped to [1, 60], and stops
// any countdown in progress.
func (engine *Engine) Configure(minutes int) {
	engine.configureSeconds(ClampMinutes(minutes) * 60)
}

func (engine *Engine) configureSeconds(seconds int) {
	engine.mu.Lock()
	engine.configureSecondsLocked(seconds)
	engine.emitLocked(EventStateChange)
	engine.mu.Unlock()
}

// Start begins or resumes counting down. It does nothing when already
// running or when no time remains.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.running || engine.remaining <= 0 {
		return
	}
	engine.running = true
	engine.finished = false
	engine.scheduleLocked()
	engine.emitLocked(EventStateChange)
}

// Pause freezes the countdown at its current value.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.running {
		return
	}
	engine.cancelLocked()
	engine.running = false
	engine.emitLocked(EventStateChange)
}

// Reset restores the full duration and re-arms the warning.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.cancelLocked()
	engine.remaining = engine.total
	engine.running = false
	engine.finished = false
	engine.warningFired = false
	engine.emitLocked(EventStateChange)
}

// Close cancels ticking and closes observers.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.cancelLocked()
	engine.running = false
	engine.closed = true
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) configureSecondsLocked(seconds int) {
	engine.cancelLocked()
	if seconds < 0 {
		seconds = 0
	}
	engine.total = seconds
	engine.remaining = seconds
	engine.running = false
	engine.finished = false
	engine.warningFired = false
}

func (engine *Engine) scheduleLocked() {
	generation := engine.generation
	engine.pending = engine.options.Clock.AfterFunc(engine.options.TickInterval, func() {
		engine.tick(generation)
	})
}

// cancelLocked stops the pending tick and invalidates any callback that
// already escaped Stop.
func (engine *Engine) cancelLocked() {
	engine.generation++
	if engine.pending != nil {
		engine.pending.Stop()
		engine.pending = nil
	}
}

func (engine *Engine) tick(generation uint64) {
	engine.mu.Lock()
	if generation != engine.generation || !engine.running {
		engine.mu.Unlock()
		return
	}
	engine.pending = nil

	var warn, finish func()
	if engine.remaining == warningThreshold && !engine.warningFired {
		engine.warningFired = true
		warn = engine.onWarning
		engine.emitLocked(EventWarning)
	}

	engine.remaining--
	if engine.remaining <= 0 {
		engine.remaining = 0
		engine.running = false
		engine.finished = true
		engine.generation++
		finish = engine.onFinished
		engine.emitLocked(EventFinished)
	} else {
		engine.scheduleLocked()
		engine.emitLocked(EventTick)
	}
	engine.mu.Unlock()

	if warn != nil {
		warn()
	}
	if finish != nil {
		finish()
	}
}

func (engine *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Total:     engine.total,
		Remaining: engine.remaining,
		Running:   engine.running,
		Finished:  engine.finished,
	}
}

func (engine *Engine) emitLocked(eventType EventType) {
	event := Event{
		Type:     eventType,
		Snapshot: engine.snapshotLocked(),
		At:       engine.options.Clock.Now(),
	}
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
