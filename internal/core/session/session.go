package session

import (
	"context"
	"sync"

	"tickflip/internal/alarm"
	"tickflip/internal/core/model"
	"tickflip/internal/core/timer"
	"tickflip/internal/logger"
)

// Notification text shown when the countdown ends.
const (
	FinishedTitle = "Timer finished!"
	FinishedBody  = "Your focus time is over. Time for a break!"
)

// Engine is the countdown surface Session drives.
type Engine interface {
	Configure(minutes int)
	Start()
	Pause()
	Reset()
	Snapshot() timer.Snapshot
	OnWarning(handler func())
	OnFinished(handler func())
	Subscribe(buffer int) <-chan timer.Event
}

// Signals is the alarm surface Session drives.
type Signals interface {
	Prepare()
	PlayAlarm(profileID string)
	PlayWarningChirp()
	TriggerHaptic(pattern alarm.HapticPattern)
	DispatchNotification(title, body string)
	SetEnabled(enabled bool)
	SetProfile(id string)
}

// Session connects the countdown to alarm delivery the way the user
// interface expects: audio is warmed on start, and the warning and finish
// edges fan out to the enabled channels.
type Session struct {
	mu      sync.Mutex
	engine  Engine
	signals Signals
	config  model.AlarmConfig
	log     *logger.Logger
	events  <-chan timer.Event
}

// New wires engine to signals and registers the warning handler.
func New(engine Engine, signals Signals, config model.AlarmConfig, log *logger.Logger) *Session {
	session := &Session{
		engine:  engine,
		signals: signals,
		log:     logger.OrNop(log),
		events:  engine.Subscribe(64),
	}
	session.ApplyPreferences(config)
	engine.OnWarning(session.announceWarning)
	engine.OnFinished(session.announceFinished)
	return session
}

// ApplyPreferences updates which channels fire.
func (session *Session) ApplyPreferences(config model.AlarmConfig) {
	session.mu.Lock()
	session.config = config
	session.mu.Unlock()

	session.signals.SetEnabled(config.SoundEnabled)
	session.signals.SetProfile(config.Profile)
}

// Preferences returns the active alarm configuration.
func (session *Session) Preferences() model.AlarmConfig {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.config
}

// Start warms the audio sink and starts the countdown.
func (session *Session) Start() {
	session.signals.Prepare()
	session.engine.Start()
}

// Toggle pauses a running countdown and starts any other.
func (session *Session) Toggle() {
	if session.engine.Snapshot().Running {
		session.engine.Pause()
		return
	}
	session.Start()
}

// Pause freezes the countdown.
func (session *Session) Pause() {
	session.engine.Pause()
}

// Reset restores the full duration unless the countdown is running.
func (session *Session) Reset() {
	if session.engine.Snapshot().Running {
		return
	}
	session.engine.Reset()
}

// SelectPreset configures a new duration unless the countdown is running.
func (session *Session) SelectPreset(minutes int) {
	if session.engine.Snapshot().Running {
		return
	}
	session.engine.Configure(minutes)
}

// Snapshot returns the countdown view.
func (session *Session) Snapshot() timer.Snapshot {
	return session.engine.Snapshot()
}

// Run logs countdown state changes until ctx ends or the engine closes.
// Alarms do not depend on it: warning and finish arrive through engine
// callbacks.
func (session *Session) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-session.events:
			if !ok {
				return
			}
			if event.Type == timer.EventStateChange || event.Type == timer.EventFinished {
				session.log.Debugw("countdown", "state", event.Snapshot.State(), "remaining", event.Snapshot.Remaining)
			}
		}
	}
}

func (session *Session) announceWarning() {
	config := session.Preferences()
	session.log.Infow("one minute remaining")
	if config.SoundEnabled {
		session.signals.PlayWarningChirp()
	}
	if config.HapticEnabled {
		session.signals.TriggerHaptic(alarm.WarningPattern)
	}
}

func (session *Session) announceFinished() {
	config := session.Preferences()
	session.log.Infow("timer finished", "profile", config.Profile)
	if config.SoundEnabled {
		session.signals.PlayAlarm(config.Profile)
	}
	if config.HapticEnabled {
		session.signals.TriggerHaptic(alarm.FinishPattern)
	}
	if config.NotificationsEnabled {
		session.signals.DispatchNotification(FinishedTitle, FinishedBody)
	}
}
