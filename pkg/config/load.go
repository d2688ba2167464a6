package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load resolves and reads the dashboard configuration. Search order:
//
//  1. ./profiles/dashboard.{toml,json,yaml}
//  2. $XDG_CONFIG_HOME/apex-pulse/dashboard.{toml,json,yaml}
//  3. ~/.config/apex-pulse/dashboard.{toml,json,yaml}
//
// If no file exists, the built-in Default is returned.
func Load() (*Config, error) {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return Default(), nil
}

// LoadFromFile reads a configuration file, choosing the decoder by file
// extension: .toml, .json, or .yaml/.yml.
func LoadFromFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{RefreshRateMS: MinRefreshRateMS}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(raw, cfg)
	case ".json":
		err = json.Unmarshal(raw, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, cfg)
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// configExtensions lists supported file extensions in preference order.
var configExtensions = []string{".toml", ".json", ".yaml"}

// searchPaths returns the ordered list of config file paths to try.
func searchPaths() []string {
	var paths []string
	for _, ext := range configExtensions {
		paths = append(paths, filepath.Join("profiles", "dashboard"+ext))
	}

	home, _ := os.UserHomeDir()
	xdg := xdgConfigHome(home)
	for _, ext := range configExtensions {
		paths = append(paths, filepath.Join(xdg, "apex-pulse", "dashboard"+ext))
	}

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(defaultXDG, "apex-pulse", "dashboard"+ext))
		}
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
