package notify

import (
	"context"
	"sync"

	"tickflip/internal/alarm"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

const (
	promptTitle   = "Notifications"
	promptMessage = "Allow TickFlip to show a desktop notification when the timer ends?"
)

// Sender delivers a desktop notification. fyne.App implements it.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// Prompt asks the user a yes/no question and reports the answer once.
type Prompt func(answer func(allowed bool))

// Notifier is the desktop alarm.Notifier. The desktop has no OS permission
// model, so the user's answer to a confirm dialog stands in for one and is
// kept for the session.
type Notifier struct {
	mu         sync.Mutex
	sender     Sender
	prompt     Prompt
	permission alarm.Permission
}

// New creates a notifier starting in the given permission state.
func New(sender Sender, prompt Prompt, initial alarm.Permission) *Notifier {
	if initial == "" {
		initial = alarm.PermissionUnknown
	}
	return &Notifier{
		sender:     sender,
		prompt:     prompt,
		permission: initial,
	}
}

// DialogPrompt asks with a confirm dialog over parent.
func DialogPrompt(parent fyne.Window) Prompt {
	return func(answer func(bool)) {
		fyne.Do(func() {
			dialog.ShowConfirm(promptTitle, promptMessage, answer, parent)
		})
	}
}

// SetPrompt replaces the permission prompt.
func (notifier *Notifier) SetPrompt(prompt Prompt) {
	notifier.mu.Lock()
	notifier.prompt = prompt
	notifier.mu.Unlock()
}

// Permission reports the current state.
func (notifier *Notifier) Permission() alarm.Permission {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.permission
}

// SetPermission overrides the remembered answer.
func (notifier *Notifier) SetPermission(permission alarm.Permission) {
	notifier.mu.Lock()
	notifier.permission = permission
	notifier.mu.Unlock()
}

// RequestPermission prompts when the state is unknown. Without a prompt the
// request is granted.
func (notifier *Notifier) RequestPermission(ctx context.Context) (alarm.Permission, error) {
	notifier.mu.Lock()
	current, prompt := notifier.permission, notifier.prompt
	notifier.mu.Unlock()
	if current != alarm.PermissionUnknown {
		return current, nil
	}
	if prompt == nil {
		notifier.SetPermission(alarm.PermissionGranted)
		return alarm.PermissionGranted, nil
	}

	answers := make(chan bool, 1)
	prompt(func(allowed bool) {
		select {
		case answers <- allowed:
		default:
		}
	})

	select {
	case <-ctx.Done():
		return alarm.PermissionUnknown, ctx.Err()
	case allowed := <-answers:
		permission := alarm.PermissionDenied
		if allowed {
			permission = alarm.PermissionGranted
		}
		notifier.SetPermission(permission)
		return permission, nil
	}
}

// Show sends a notification unless permission was denied.
func (notifier *Notifier) Show(title, body string) error {
	if notifier.Permission() == alarm.PermissionDenied {
		return alarm.ErrPermissionDenied
	}
	notifier.sender.SendNotification(fyne.NewNotification(title, body))
	return nil
}
