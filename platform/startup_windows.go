//go:build windows

package platform

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/registry"
)

const (
	runKeyPath   = `Software\Microsoft\Windows\CurrentVersion\Run`
	startupValue = "ClipTranslate"
)

// WindowsStartup registers the executable under the per-user Run key so it
// launches at login.
type WindowsStartup struct{}

// NewStartup creates the Windows startup registration.
func NewStartup() Startup {
	return &WindowsStartup{}
}

// Install writes the current executable path to the Run key.
func (s *WindowsStartup) Install() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(startupValue, exe); err != nil {
		return fmt.Errorf("failed to set registry value: %w", err)
	}
	return nil
}

// Uninstall removes the Run key value. A value that was never installed is
// not an error.
func (s *WindowsStartup) Uninstall() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(startupValue); err != nil && err != registry.ErrNotExist {
		return fmt.Errorf("failed to delete registry value: %w", err)
	}
	return nil
}

// Installed reports whether the Run key value exists.
func (s *WindowsStartup) Installed() bool {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer key.Close()

	_, _, err = key.GetStringValue(startupValue)
	return err == nil
}
