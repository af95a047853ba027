//go:build !windows

package platform

import (
	"context"
	"fmt"
	"os"

	"cliptranslate/hotkey"
)

// Stubs keep the module building on non-Windows hosts; the agent surfaces
// their errors at startup.

type stubKeySource struct{}

func NewKeySource() KeySource {
	return stubKeySource{}
}

func (stubKeySource) Listen(ctx context.Context, spec hotkey.Spec) (<-chan struct{}, error) {
	return nil, fmt.Errorf("global keyboard hook is only supported on windows")
}

type stubClipboard struct{}

func NewClipboard() Clipboard {
	return stubClipboard{}
}

func (stubClipboard) Get() (string, error) {
	return "", fmt.Errorf("clipboard access is only supported on windows")
}

func (stubClipboard) Set(text string) error {
	return fmt.Errorf("clipboard access is only supported on windows")
}

// envCredentials reads the API key from the environment only; there is no
// credential store to write to.
type envCredentials struct{}

func NewCredentials() Credentials {
	return envCredentials{}
}

func (envCredentials) Load() (string, error) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("credential store is only supported on windows; set GEMINI_API_KEY")
}

func (envCredentials) Save(key string) error {
	return fmt.Errorf("credential store is only supported on windows")
}

func (envCredentials) Delete() error {
	return fmt.Errorf("credential store is only supported on windows")
}

type stubStartup struct{}

func NewStartup() Startup {
	return stubStartup{}
}

func (stubStartup) Install() error {
	return fmt.Errorf("startup registration is only supported on windows")
}

func (stubStartup) Uninstall() error {
	return fmt.Errorf("startup registration is only supported on windows")
}

func (stubStartup) Installed() bool {
	return false
}
