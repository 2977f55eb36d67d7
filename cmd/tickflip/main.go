package main

import (
	"context"
	"errors"
	"time"

	"tickflip/internal/alarm"
	"tickflip/internal/audio"
	"tickflip/internal/config"
	"tickflip/internal/core/session"
	"tickflip/internal/core/timer"
	"tickflip/internal/logger"
	"tickflip/internal/platform"
	"tickflip/internal/storage"
	"tickflip/internal/ui/animation"
	"tickflip/internal/ui/notify"
	"tickflip/internal/ui/overlay"
	"tickflip/internal/ui/preferences"
	"tickflip/internal/ui/timerview"
	"tickflip/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const (
	appName = "TickFlip"
	appID   = "com.tickflip.app"

	warningNotice   = "1 minute remaining"
	warningNoticeOn = 4 * time.Second
)

func main() {
	bootLog := logger.New(logger.InfoLevel)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if err := platform.ActivateRunning(appName); err != nil {
				bootLog.Warnw("activate running instance", "err", err)
			}
			return
		}
		bootLog.Errorw("single instance", "err", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	configDir, err := platform.NewService().AppConfigDir(appName)
	if err != nil {
		bootLog.Warnw("config directory unavailable, preferences will not persist", "err", err)
	}

	cfg, err := config.Load(configDir)
	log := logger.Get(cfg.LogLevel)
	defer func() {
		_ = log.Sync()
	}()
	if err != nil {
		log.Warnw("config load failed, using defaults", "err", err)
	}

	defaults := preferences.DefaultSettings()
	defaults.DefaultMinutes = cfg.DefaultMinutes
	settings := defaults
	if configDir != "" {
		settings, err = storage.LoadSettings(configDir, defaults)
		if err != nil {
			log.Warnw("settings load failed, using defaults", "err", err)
		}
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())

	engine := timer.New(timer.Config{
		TickInterval:   cfg.TickInterval,
		DefaultMinutes: settings.TimerConfig().DefaultMinutes,
	})
	defer engine.Close()

	initialPermission := alarm.PermissionUnknown
	if settings.NotificationsEnabled {
		initialPermission = alarm.PermissionGranted
	}
	notifier := notify.New(fyneApp, nil, initialPermission)

	registry := alarm.DefaultRegistry()
	dispatcher := alarm.NewDispatcher(alarm.Options{
		Registry: registry,
		OpenSink: func(ctx context.Context) (audio.Sink, error) {
			device, err := audio.OpenDevice(ctx, audio.DeviceOptions{
				SampleRate: cfg.Audio.SampleRate,
				BufferSize: cfg.Audio.BufferSize,
			})
			if err != nil {
				return nil, err
			}
			return device, nil
		},
		Notifier:      notifier,
		Logger:        log,
		Profile:       settings.AlarmProfile,
		SoundDisabled: !settings.SoundEnabled,
	})
	defer func() {
		if err := dispatcher.Close(); err != nil {
			log.Warnw("close alarm dispatcher", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timerSession := session.New(engine, dispatcher, settings.AlarmConfig(), log)
	go timerSession.Run(ctx)

	alarmOverlay := overlay.New(fyneApp, animation.New(animation.DefaultConfig()))
	alarmOverlay.SetOnDismiss(timerSession.Reset)

	var prefsWindow *preferences.Window
	timerWindow := timerview.New(fyneApp, timerSession, settings.View, func() {
		prefsWindow.Show()
	})
	notifier.SetPrompt(notify.DialogPrompt(timerWindow.Window()))

	settingsStore := newSettingsController(configDir, settings, notifier, func(updated preferences.Settings) {
		timerSession.ApplyPreferences(updated.AlarmConfig())
		fyne.Do(func() {
			timerWindow.SetView(updated.View)
			prefsWindow.UpdateSettings(updated)
		})
	}, log)

	prefsWindow = preferences.New(fyneApp, settings, registry.IDs(), func(updated preferences.Settings) {
		settingsStore.Save(ctx, updated)
	}, dispatcher.PreviewAlarm)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        timerWindow.Show,
			OnToggle:      timerSession.Toggle,
			OnReset:       timerSession.Reset,
			OnPreset:      timerSession.SelectPreset,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		timerWindow.Window().SetCloseIntercept(timerWindow.Window().Hide)
	}

	events := engine.Subscribe(64)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				handleEvent(event, timerWindow, alarmOverlay, trayManager)
			})
		}
	}()

	go guard.Serve(func() {
		fyne.Do(timerWindow.Show)
	})

	log.Infow("tickflip started", "config_dir", configDir, "minutes", settings.TimerConfig().DefaultMinutes)
	timerWindow.Window().ShowAndRun()
	log.Infow("tickflip stopped")
}

func handleEvent(event timer.Event, timerWindow *timerview.Window, alarmOverlay *overlay.Window, trayManager *tray.Manager) {
	snapshot := event.Snapshot
	timerWindow.Render(snapshot)
	if trayManager != nil {
		trayManager.SetRunning(snapshot.Running)
		trayManager.SetStatus(trayStatus(snapshot))
	}

	switch event.Type {
	case timer.EventWarning:
		timerWindow.ShowNotice(warningNotice, warningNoticeOn)
	case timer.EventFinished:
		alarmOverlay.Show(snapshot.Total)
	case timer.EventStateChange:
		if !snapshot.Finished {
			alarmOverlay.Hide()
		}
	}
}

func trayStatus(snapshot timer.Snapshot) string {
	switch snapshot.State() {
	case timer.StateFinished:
		return "finished"
	case timer.StatePaused:
		return timerview.FormatRemaining(snapshot.Remaining) + " (paused)"
	default:
		return timerview.FormatRemaining(snapshot.Remaining)
	}
}
