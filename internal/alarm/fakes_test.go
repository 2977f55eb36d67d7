package alarm

import (
	"context"
	"errors"
	"sync"
	"time"
)

type scheduled struct {
	at      time.Duration
	samples int
}

type fakeSink struct {
	mu        sync.Mutex
	rate      int
	now       time.Duration
	suspended bool
	resumeErr error
	resumes   int
	closed    bool
	schedules []scheduled
}

func newFakeSink() *fakeSink {
	return &fakeSink{rate: 1000, now: 5 * time.Second}
}

func (sink *fakeSink) SampleRate() int { return sink.rate }

func (sink *fakeSink) Now() time.Duration {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return sink.now
}

func (sink *fakeSink) Schedule(at time.Duration, samples []float32) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.schedules = append(sink.schedules, scheduled{at: at, samples: len(samples)})
}

func (sink *fakeSink) Suspended() bool {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return sink.suspended
}

func (sink *fakeSink) Resume() error {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.resumes++
	if sink.resumeErr != nil {
		return sink.resumeErr
	}
	sink.suspended = false
	return nil
}

func (sink *fakeSink) Close() error {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.closed = true
	return nil
}

func (sink *fakeSink) recorded() []scheduled {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return append([]scheduled(nil), sink.schedules...)
}

type fakeVibrator struct {
	mu       sync.Mutex
	err      error
	patterns []HapticPattern
}

func (vibrator *fakeVibrator) Vibrate(pattern HapticPattern) error {
	vibrator.mu.Lock()
	defer vibrator.mu.Unlock()
	vibrator.patterns = append(vibrator.patterns, pattern)
	return vibrator.err
}

type shown struct {
	title string
	body  string
}

type fakeNotifier struct {
	mu         sync.Mutex
	permission Permission
	answer     Permission
	requestErr error
	block      bool
	requests   int
	shown      []shown
}

func (notifier *fakeNotifier) Permission() Permission {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.permission
}

func (notifier *fakeNotifier) RequestPermission(ctx context.Context) (Permission, error) {
	notifier.mu.Lock()
	notifier.requests++
	block := notifier.block
	notifier.mu.Unlock()

	if block {
		<-ctx.Done()
		return PermissionUnknown, ctx.Err()
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.requestErr != nil {
		return PermissionUnknown, notifier.requestErr
	}
	notifier.permission = notifier.answer
	return notifier.answer, nil
}

func (notifier *fakeNotifier) Show(title, body string) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.shown = append(notifier.shown, shown{title: title, body: body})
	return nil
}

func (notifier *fakeNotifier) snapshot() (int, []shown) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.requests, append([]shown(nil), notifier.shown...)
}

var errBoom = errors.New("boom")
