// Package prefs persists user preferences locally, outside the remote
// task store, with the same atomic-write discipline as the timer
// registry.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preferences are the durable per-user display and behavior settings.
type Preferences struct {
	HideCompleted      bool   `json:"hide_completed"`
	ConfirmDelete      bool   `json:"confirm_delete"`
	AutoRefreshSeconds int    `json:"auto_refresh_seconds"` // 0 disables auto-refresh
	SoundEnabled       bool   `json:"sound_enabled"`
	Theme              string `json:"theme"`
}

// Defaults returns the out-of-the-box preferences.
func Defaults() Preferences {
	return Preferences{
		HideCompleted:      false,
		ConfirmDelete:      true,
		AutoRefreshSeconds: 0,
		SoundEnabled:       true,
		Theme:              "dark",
	}
}

// Load reads preferences from path. A missing file yields the defaults.
func Load(path string) (Preferences, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Defaults(), nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("reading preferences %s: %w", path, err)
	}
	p := Defaults()
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("corrupt preferences in %s: %w", path, err)
	}
	return p, nil
}

// Save atomically writes preferences to path.
func Save(path string, p Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling preferences: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing preferences temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming preferences temp file: %w", err)
	}
	return nil
}
