// Package config provides the global configuration for girt.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the girt configuration directory.
//
// Resolution:
//   - $GIRT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/girt if set (respects XDG on any platform)
//   - %AppData%/girt on Windows
//   - ~/.config/girt on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("GIRT_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "girt")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "girt")
		}
	}

	// macOS and Linux: ~/.config/girt
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "girt")
}
