package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		name    string
		combo   string
		want    KeyCombo
		wantErr bool
	}{
		{
			name:  "plain key",
			combo: "c",
			want:  KeyCombo{Key: "c"},
		},
		{
			name:  "ctrl plus key",
			combo: "ctrl+c",
			want:  KeyCombo{Ctrl: true, Key: "c"},
		},
		{
			name:  "all modifiers",
			combo: "ctrl+alt+shift+t",
			want:  KeyCombo{Ctrl: true, Alt: true, Shift: true, Key: "t"},
		},
		{
			name:  "case and spacing tolerated",
			combo: "Ctrl + Shift + T",
			want:  KeyCombo{Ctrl: true, Shift: true, Key: "t"},
		},
		{
			name:  "control alias",
			combo: "control+v",
			want:  KeyCombo{Ctrl: true, Key: "v"},
		},
		{
			name:    "modifier-only combo rejected",
			combo:   "ctrl+shift",
			wantErr: true,
		},
		{
			name:    "unknown modifier in the middle",
			combo:   "ctrl+meta+c",
			wantErr: true,
		},
		{
			name:    "empty string",
			combo:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHotkey(tt.combo)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFromCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "ctrl+c", cfg.Hotkey.Combo)
	assert.Equal(t, "double", cfg.Hotkey.Mode)
	assert.Equal(t, "gemini-2.0-flash", cfg.Translation.Model)
	assert.True(t, cfg.Web.Enabled)

	// The file was written and loads back identically.
	_, err = os.Stat(path)
	require.NoError(t, err)
	again, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[hotkey]\ncombo = \"ctrl+shift+t\"\nmode = \"single\"\n"), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "ctrl+shift+t", cfg.Hotkey.Combo)
	assert.Equal(t, "single", cfg.Hotkey.Mode)
	// Untouched sections keep their defaults.
	assert.Equal(t, "gemini-2.0-flash", cfg.Translation.Model)
	assert.Equal(t, 8765, cfg.Web.Port)
}

func TestLoadFromRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("hotkey = [broken"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
