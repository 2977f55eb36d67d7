package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains pulse timing values.
type Config struct {
	On  Range
	Off Range

	// MaxDuration stops an unattended pulse; zero pulses until stopped.
	MaxDuration time.Duration
}

// Engine drives a two-state visual pulse on its own goroutine.
type Engine struct {
	mu     sync.Mutex
	config Config
	cancel context.CancelFunc
	done   chan struct{}
	rng    *rand.Rand
}

// New creates a new animation engine.
func New(config Config) *Engine {
	return &Engine{
		config: config,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartPulse calls apply(true) and apply(false) alternately until ctx ends,
// Stop is called or MaxDuration passes. It always leaves the pulse on.
func (engine *Engine) StartPulse(ctx context.Context, apply func(on bool)) {
	engine.start(ctx, func(runCtx context.Context) {
		defer apply(true)
		if engine.config.MaxDuration > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, engine.config.MaxDuration)
			defer cancel()
		}
		for {
			apply(true)
			if !sleepWithContext(runCtx, engine.sample(engine.config.On)) {
				return
			}
			apply(false)
			if !sleepWithContext(runCtx, engine.sample(engine.config.Off)) {
				return
			}
		}
	})
}

// Stop terminates any active animation and waits for it to settle.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel, engine.done = nil, nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.Stop()

	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

func (engine *Engine) sample(value Range) time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return value.Random(engine.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
