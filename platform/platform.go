// Package platform is the OS boundary: the keyboard hook that feeds the
// hotkey matcher, clipboard access, the credential store for the API key,
// and login startup registration. Windows gets real implementations; other
// platforms get stubs so the rest of the module builds and tests anywhere.
package platform

import (
	"context"

	"cliptranslate/hotkey"
)

// KeySource delivers system-wide hotkey activations. Each value on the
// returned channel is one detected activation, already debounced.
type KeySource interface {
	Listen(ctx context.Context, spec hotkey.Spec) (<-chan struct{}, error)
}

// Clipboard provides clipboard text access.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Credentials stores the provider API key outside the config file.
type Credentials interface {
	Load() (string, error)
	Save(key string) error
	Delete() error
}

// Startup registers the executable to launch at login.
type Startup interface {
	Install() error
	Uninstall() error
	Installed() bool
}
