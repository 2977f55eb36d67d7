package main

import (
	"context"
	"sync"
	"time"

	"tickflip/internal/alarm"
	"tickflip/internal/logger"
	"tickflip/internal/storage"
	"tickflip/internal/ui/preferences"
)

const permissionTimeout = time.Minute

type permissionRequester interface {
	SetPermission(permission alarm.Permission)
	RequestPermission(ctx context.Context) (alarm.Permission, error)
}

// settingsController owns the saved preferences. Saving applies and persists
// them; turning notifications on asks for permission, and a refusal turns the
// setting back off on disk so the next launch does not assume consent.
type settingsController struct {
	mu       sync.Mutex
	dir      string
	settings preferences.Settings
	notifier permissionRequester
	apply    func(preferences.Settings)
	log      *logger.Logger
	pending  sync.WaitGroup
}

func newSettingsController(dir string, settings preferences.Settings, notifier permissionRequester, apply func(preferences.Settings), log *logger.Logger) *settingsController {
	return &settingsController{
		dir:      dir,
		settings: settings,
		notifier: notifier,
		apply:    apply,
		log:      logger.OrNop(log),
	}
}

func (controller *settingsController) Settings() preferences.Settings {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.settings
}

// Save applies and persists updated. A permission prompt, if any, runs in
// the background until ctx ends.
func (controller *settingsController) Save(ctx context.Context, updated preferences.Settings) {
	controller.mu.Lock()
	previous := controller.settings
	controller.settings = updated
	controller.mu.Unlock()

	controller.commit(updated)

	if updated.NotificationsEnabled && !previous.NotificationsEnabled {
		controller.notifier.SetPermission(alarm.PermissionUnknown)
		controller.pending.Add(1)
		go func() {
			defer controller.pending.Done()
			controller.confirmNotifications(ctx)
		}()
	}
}

// Wait blocks until background permission requests finish.
func (controller *settingsController) Wait() {
	controller.pending.Wait()
}

func (controller *settingsController) confirmNotifications(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, permissionTimeout)
	defer cancel()

	permission, err := controller.notifier.RequestPermission(ctx)
	if err != nil {
		controller.log.Warnw("notification permission request", "err", err)
		return
	}
	controller.log.Infow("notification permission", "state", permission)
	if permission != alarm.PermissionDenied {
		return
	}

	controller.mu.Lock()
	if !controller.settings.NotificationsEnabled {
		controller.mu.Unlock()
		return
	}
	controller.settings.NotificationsEnabled = false
	settings := controller.settings
	controller.mu.Unlock()

	controller.commit(settings)
}

func (controller *settingsController) commit(settings preferences.Settings) {
	if controller.apply != nil {
		controller.apply(settings)
	}
	if controller.dir == "" {
		return
	}
	if err := storage.SaveSettings(controller.dir, settings); err != nil {
		controller.log.Warnw("save settings", "err", err)
	}
}
