package alarm

import (
	"context"
	"errors"
)

// ErrPermissionDenied indicates the user refused notifications.
var ErrPermissionDenied = errors.New("notification permission denied")

// Permission is the notification permission state.
type Permission string

const (
	PermissionUnknown Permission = "unknown"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notifier displays system notifications and owns their permission state.
type Notifier interface {
	Permission() Permission
	// RequestPermission may prompt the user and blocks until answered or ctx ends.
	RequestPermission(ctx context.Context) (Permission, error)
	Show(title, body string) error
}
