// Package store persists graphs, corrections, and acknowledgments as JSON
// documents under $XDG_DATA_HOME/sentinel/. Writes are atomic and files are
// owner-only; they carry personal schedule data.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// schemaVersion is written into every persisted document.
const schemaVersion = "1.0"

// Dir returns the sentinel data directory, honoring XDG_DATA_HOME.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "sentinel"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "sentinel"), nil
}

// writeAtomic writes data to path via a temp file and rename, creating the
// parent directory as needed.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
