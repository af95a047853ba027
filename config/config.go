// Package config loads and persists the TOML configuration file. The API
// key is deliberately absent from the file; it lives in the platform
// credential store or the GEMINI_API_KEY environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const appDirName = "cliptranslate"

type Config struct {
	Hotkey      HotkeyConfig      `toml:"hotkey"`
	Translation TranslationConfig `toml:"translation"`
	Web         WebConfig         `toml:"web"`
}

type HotkeyConfig struct {
	Combo string `toml:"combo"` // e.g. "ctrl+c" or "ctrl+shift+t"
	Mode  string `toml:"mode"`  // "single" or "double"
}

type TranslationConfig struct {
	Model       string `toml:"model"`
	PromptMode  string `toml:"prompt_mode"` // "detailed" or "concise"
	CopyResult  bool   `toml:"copy_result"`
	SaveHistory bool   `toml:"save_history"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		Hotkey: HotkeyConfig{
			Combo: "ctrl+c",
			Mode:  "double",
		},
		Translation: TranslationConfig{
			Model:       "gemini-2.0-flash",
			PromptMode:  "detailed",
			CopyResult:  false,
			SaveHistory: true,
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8765,
		},
	}
}

// Dir returns the application config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}

	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// ConfigPath returns the path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the TOML file.
// If the file doesn't exist, it creates it with default values.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from an explicit path, creating it with
// defaults when absent. Missing keys keep their default values.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration back to its default location.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return save(path, c)
}

func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// KeyCombo represents a parsed keyboard combination. Key is always a
// non-modifier key name; modifier-only combos are rejected because the
// matcher needs a concrete key edge to detect presses on.
type KeyCombo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Key   string
}

// ParseHotkey parses a hotkey combo string like "ctrl+shift+t".
func ParseHotkey(combo string) (KeyCombo, error) {
	var kc KeyCombo
	parts := strings.Split(strings.ToLower(combo), "+")

	for i, part := range parts {
		part = strings.TrimSpace(part)

		isModifier := false
		switch part {
		case "ctrl", "control":
			kc.Ctrl = true
			isModifier = true
		case "alt":
			kc.Alt = true
			isModifier = true
		case "shift":
			kc.Shift = true
			isModifier = true
		}

		// A non-modifier part is only valid as the final key.
		if !isModifier {
			if part == "" {
				return kc, fmt.Errorf("empty hotkey combo")
			}
			if i == len(parts)-1 {
				kc.Key = part
			} else {
				return kc, fmt.Errorf("unknown modifier: %s", part)
			}
		}
	}

	if kc.Key == "" {
		return kc, fmt.Errorf("hotkey combo needs a non-modifier key: %s", combo)
	}
	return kc, nil
}
