package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all sessiondoc configuration.
type Config struct {
	OutputDir string `toml:"output_dir"`

	Report  ReportConfig  `toml:"report"`
	History HistoryConfig `toml:"history"`
	Archive ArchiveConfig `toml:"archive"`
}

type ReportConfig struct {
	Format      string `toml:"format"`       // structured, yaml, narrative, plain
	SessionName string `toml:"session_name"` // default when --name is omitted
	TopTools    int    `toml:"top_tools"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

type ArchiveConfig struct {
	Compress bool   `toml:"compress"`
	Dir      string `toml:"dir"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		OutputDir: "~/sessiondoc/reports",
		Report: ReportConfig{
			Format:      "narrative",
			SessionName: "Session",
			TopTools:    10,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "~/sessiondoc/history.db",
		},
		Archive: ArchiveConfig{
			Compress: false,
			Dir:      "~/sessiondoc/archive",
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	// Expand ~ in paths
	cfg.OutputDir = expandHome(cfg.OutputDir)
	cfg.History.DBPath = expandHome(cfg.History.DBPath)
	cfg.Archive.Dir = expandHome(cfg.Archive.Dir)

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "sessiondoc", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "sessiondoc", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
