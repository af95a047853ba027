//go:build windows

// Package notify shows desktop notifications for translation results.
package notify

import (
	"log/slog"

	"git.sr.ht/~jackmordaunt/go-toast/v2"
)

const appID = "Clipboard Translator"

// Show displays a toast notification. Failures are logged and swallowed;
// notifications are best-effort.
func Show(title, message string) {
	n := toast.Notification{
		AppID: appID,
		Title: title,
		Body:  message,
	}
	if err := n.Push(); err != nil {
		slog.Error("Failed to show notification", "error", err, "title", title)
	}
}
