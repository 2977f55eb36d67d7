package alarm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"tickflip/internal/audio"
	"tickflip/internal/logger"
)

const defaultPermissionTimeout = time.Minute

// SinkOpener creates the audio sink on first use.
type SinkOpener func(ctx context.Context) (audio.Sink, error)

// Options configures a Dispatcher. Every collaborator is optional.
type Options struct {
	Registry          *Registry
	OpenSink          SinkOpener
	Vibrator          Vibrator
	Notifier          Notifier
	Logger            *logger.Logger
	Profile           string
	SoundDisabled     bool
	PermissionTimeout time.Duration
}

// Dispatcher delivers alarms over sound, haptics and notifications. Every
// operation returns immediately and runs in the background; the channels are
// independent and failures are logged, never returned.
type Dispatcher struct {
	mu           sync.Mutex
	registry     *Registry
	openSink     SinkOpener
	vibrator     Vibrator
	notifier     Notifier
	log          *logger.Logger
	soundEnabled bool
	profile      string
	closed       bool
	timeout      time.Duration

	sinkMu sync.Mutex
	sink   audio.Sink

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. The audio sink stays cold until
// Prepare or the first sound.
func NewDispatcher(options Options) *Dispatcher {
	if options.Registry == nil {
		options.Registry = DefaultRegistry()
	}
	if options.Profile == "" {
		options.Profile = options.Registry.Fallback()
	}
	if options.PermissionTimeout <= 0 {
		options.PermissionTimeout = defaultPermissionTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		registry:     options.Registry,
		openSink:     options.OpenSink,
		vibrator:     options.Vibrator,
		notifier:     options.Notifier,
		log:          logger.OrNop(options.Logger),
		soundEnabled: !options.SoundDisabled,
		profile:      options.Profile,
		timeout:      options.PermissionTimeout,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// SetEnabled turns sound on or off.
func (dispatcher *Dispatcher) SetEnabled(enabled bool) {
	dispatcher.mu.Lock()
	dispatcher.soundEnabled = enabled
	dispatcher.mu.Unlock()
}

// Enabled reports whether sound is on.
func (dispatcher *Dispatcher) Enabled() bool {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	return dispatcher.soundEnabled
}

// SetProfile selects the profile TestAlarm plays. Unknown identifiers are
// kept and resolve to the fallback when played.
func (dispatcher *Dispatcher) SetProfile(id string) {
	dispatcher.mu.Lock()
	dispatcher.profile = id
	dispatcher.mu.Unlock()
}

// Profile returns the selected profile identifier.
func (dispatcher *Dispatcher) Profile() string {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	return dispatcher.profile
}

// Prepare opens or resumes the audio sink ahead of time. Call it from the
// user action that starts a countdown so the sink is warm when the alarm is due.
func (dispatcher *Dispatcher) Prepare() {
	if !dispatcher.Enabled() {
		return
	}
	dispatcher.spawn(func(ctx context.Context) {
		if _, err := dispatcher.readySink(ctx); err != nil {
			dispatcher.log.Warnw("prepare audio failed", "err", err)
		}
	})
}

// PlayAlarm plays the named profile, or the fallback for unknown names.
func (dispatcher *Dispatcher) PlayAlarm(profileID string) {
	if !dispatcher.Enabled() {
		return
	}
	dispatcher.playProfile(profileID)
}

// TestAlarm plays the selected profile.
func (dispatcher *Dispatcher) TestAlarm() {
	dispatcher.PlayAlarm(dispatcher.Profile())
}

// PreviewAlarm plays profileID even while sound is off, for trying a
// profile before it is saved.
func (dispatcher *Dispatcher) PreviewAlarm(profileID string) {
	dispatcher.playProfile(profileID)
}

func (dispatcher *Dispatcher) playProfile(profileID string) {
	profile := dispatcher.registry.Resolve(profileID)
	dispatcher.spawn(func(ctx context.Context) {
		if err := dispatcher.play(ctx, profile.Tones); err != nil {
			dispatcher.log.Warnw("play alarm failed", "profile", profile.ID, "err", err)
		}
	})
}

// PlayWarningChirp plays the short one-minute warning beep.
func (dispatcher *Dispatcher) PlayWarningChirp() {
	if !dispatcher.Enabled() {
		return
	}
	dispatcher.spawn(func(ctx context.Context) {
		if err := dispatcher.play(ctx, []ToneDescriptor{{Tone: WarningChirp}}); err != nil {
			dispatcher.log.Warnw("play warning failed", "err", err)
		}
	})
}

// TriggerHaptic forwards pattern to the vibrator, if any.
func (dispatcher *Dispatcher) TriggerHaptic(pattern HapticPattern) {
	if dispatcher.vibrator == nil {
		dispatcher.log.Warnw("haptics unavailable", "err", ErrUnsupported)
		return
	}
	if len(pattern) == 0 {
		return
	}
	pattern = append(HapticPattern(nil), pattern...)
	dispatcher.spawn(func(context.Context) {
		if err := dispatcher.vibrator.Vibrate(pattern); err != nil {
			dispatcher.log.Warnw("haptic feedback failed", "err", err)
		}
	})
}

// DispatchNotification shows a notification when permission allows. An
// unknown permission is requested first; a denied one is a silent no-op.
func (dispatcher *Dispatcher) DispatchNotification(title, body string) {
	if dispatcher.notifier == nil {
		dispatcher.log.Warnw("notifications unavailable", "err", ErrUnsupported)
		return
	}
	dispatcher.spawn(func(ctx context.Context) {
		if err := dispatcher.notify(ctx, title, body); err != nil {
			if errors.Is(err, ErrPermissionDenied) {
				dispatcher.log.Debugw("notification skipped", "err", err)
				return
			}
			dispatcher.log.Warnw("notification failed", "err", err)
		}
	})
}

// Wait blocks until all background deliveries have finished.
func (dispatcher *Dispatcher) Wait() {
	dispatcher.tasks.Wait()
}

// Close cancels pending permission prompts, waits for deliveries and
// releases the audio sink.
func (dispatcher *Dispatcher) Close() error {
	dispatcher.mu.Lock()
	if dispatcher.closed {
		dispatcher.mu.Unlock()
		return nil
	}
	dispatcher.closed = true
	dispatcher.mu.Unlock()

	dispatcher.cancel()
	dispatcher.tasks.Wait()

	dispatcher.sinkMu.Lock()
	defer dispatcher.sinkMu.Unlock()
	if closer, ok := dispatcher.sink.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close audio sink: %w", err)
		}
	}
	dispatcher.sink = nil
	return nil
}

func (dispatcher *Dispatcher) spawn(task func(ctx context.Context)) {
	dispatcher.mu.Lock()
	if dispatcher.closed {
		dispatcher.mu.Unlock()
		return
	}
	dispatcher.tasks.Add(1)
	dispatcher.mu.Unlock()

	go func() {
		defer dispatcher.tasks.Done()
		task(dispatcher.ctx)
	}()
}

// readySink opens the sink on first use and resumes it when suspended.
func (dispatcher *Dispatcher) readySink(ctx context.Context) (audio.Sink, error) {
	dispatcher.sinkMu.Lock()
	defer dispatcher.sinkMu.Unlock()

	if dispatcher.sink == nil {
		if dispatcher.openSink == nil {
			return nil, audio.ErrSinkUnavailable
		}
		sink, err := dispatcher.openSink(ctx)
		if err != nil {
			return nil, err
		}
		if sink == nil {
			return nil, audio.ErrSinkUnavailable
		}
		dispatcher.sink = sink
	}

	if dispatcher.sink.Suspended() {
		if err := dispatcher.sink.Resume(); err != nil {
			return nil, fmt.Errorf("resume audio sink: %w", err)
		}
	}
	return dispatcher.sink, nil
}

func (dispatcher *Dispatcher) play(ctx context.Context, tones []ToneDescriptor) error {
	sink, err := dispatcher.readySink(ctx)
	if err != nil {
		return err
	}
	synth := audio.NewSynthesizer(sink)
	now := sink.Now()
	for _, descriptor := range tones {
		if err := synth.PlayTone(now+descriptor.Offset, descriptor.Tone); err != nil {
			return err
		}
	}
	return nil
}

func (dispatcher *Dispatcher) notify(ctx context.Context, title, body string) error {
	switch dispatcher.notifier.Permission() {
	case PermissionGranted:
	case PermissionDenied:
		return ErrPermissionDenied
	default:
		requestCtx, cancel := context.WithTimeout(ctx, dispatcher.timeout)
		defer cancel()
		permission, err := dispatcher.notifier.RequestPermission(requestCtx)
		if err != nil {
			return fmt.Errorf("request notification permission: %w", err)
		}
		if permission != PermissionGranted {
			return ErrPermissionDenied
		}
	}

	if err := dispatcher.notifier.Show(title, body); err != nil {
		return fmt.Errorf("show notification: %w", err)
	}
	return nil
}
