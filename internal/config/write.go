package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the sessiondoc config directory path.
// Uses $XDG_CONFIG_HOME/sessiondoc if set, otherwise ~/.config/sessiondoc.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sessiondoc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sessiondoc")
}

// WriteDefault writes a default config.toml pointing at outputDir.
// Returns the config file path. Skips if config.toml already exists.
func WriteDefault(outputDir string) (string, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, nil // already exists
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	portablePath := CompressHome(outputDir)

	content := fmt.Sprintf(`output_dir = %q

[report]
format = "narrative"
session_name = "Session"
top_tools = 10

[history]
enabled = true
db_path = "~/sessiondoc/history.db"

[archive]
compress = false
dir = "~/sessiondoc/archive"
`, portablePath)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return path, nil
}

// CompressHome replaces $HOME prefix with ~/ for portable config values.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
