// Package systray provides the tray icon and menu for the agent.
package systray

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/getlantern/systray"

	"cliptranslate/platform"
)

// Manager manages the system tray icon and menu
type Manager struct {
	webPort  int
	startup  platform.Startup
	iconData []byte
	quit     chan struct{}
}

// NewManager creates a new systray manager
func NewManager(webPort int, startup platform.Startup, iconData []byte) *Manager {
	return &Manager{
		webPort:  webPort,
		startup:  startup,
		iconData: iconData,
		quit:     make(chan struct{}),
	}
}

// Run starts the system tray (blocking call)
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray
func (m *Manager) Stop() {
	systray.Quit()
}

// WaitForQuit returns a channel that will be closed when user clicks Quit
func (m *Manager) WaitForQuit() <-chan struct{} {
	return m.quit
}

// onReady is called when the systray is ready
func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}

	systray.SetTitle("ClipTranslate")
	systray.SetTooltip("ClipTranslate - Clipboard Translation")

	mOpenDashboard := systray.AddMenuItem("Open Dashboard", "Open the ClipTranslate dashboard")
	mStartup := systray.AddMenuItemCheckbox("Start with Windows", "Run ClipTranslate at login", m.startup.Installed())
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit ClipTranslate")

	go func() {
		for {
			select {
			case <-mOpenDashboard.ClickedCh:
				m.openDashboard()
			case <-mStartup.ClickedCh:
				m.toggleStartup(mStartup)
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				close(m.quit)
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when the systray is exiting
func (m *Manager) onExit() {
	slog.Info("System tray exited")
}

// toggleStartup flips login-time startup registration and syncs the checkbox.
func (m *Manager) toggleStartup(item *systray.MenuItem) {
	if item.Checked() {
		if err := m.startup.Uninstall(); err != nil {
			slog.Error("Failed to remove startup registration", "error", err)
			return
		}
		item.Uncheck()
		slog.Info("Startup registration removed")
	} else {
		if err := m.startup.Install(); err != nil {
			slog.Error("Failed to register for startup", "error", err)
			return
		}
		item.Check()
		slog.Info("Registered to start at login")
	}
}

// openDashboard opens the dashboard in the default browser
func (m *Manager) openDashboard() {
	url := fmt.Sprintf("http://localhost:%d", m.webPort)
	slog.Info("Opening dashboard", "url", url)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		slog.Error("Unsupported platform for opening browser", "platform", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open dashboard", "error", err)
	}
}
