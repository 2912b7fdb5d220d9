// Package config reads the optional TOML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds file-level defaults. Command-line flags and env vars win over it.
type Config struct {
	// Store is a SQLite path, a postgres:// URL, a *.json file path or "memory".
	Store string    `toml:"store"`
	// Theme is used when no theme has been stored yet; empty means detect from the terminal.
	Theme string    `toml:"theme"`
	Log   LogConfig `toml:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Dir is the per-user directory holding the store, log and config.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada"), nil
}

// Default returns the settings used when no file exists.
func Default() Config {
	cfg := Config{Log: LogConfig{Level: "info", Format: "text"}}
	if dir, err := Dir(); err == nil {
		cfg.Store = filepath.Join(dir, "tada.db")
		cfg.Log.File = filepath.Join(dir, "tada.log")
	}
	return cfg
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}
