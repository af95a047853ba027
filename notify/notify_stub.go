//go:build !windows

package notify

import "log/slog"

// Show logs the notification; toasts are only wired up on Windows.
func Show(title, message string) {
	slog.Info("Notification", "title", title, "message", message)
}
