package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// projectConfig carries per-project defaults from squish.toml. Flags that
// were set explicitly on the command line win over these.
type projectConfig struct {
	Script scriptConfig `toml:"script"`
	Style  styleConfig  `toml:"style"`
	Output outputConfig `toml:"output"`
	Cache  cacheConfig  `toml:"cache"`
}

type scriptConfig struct {
	Warn    uint     `toml:"warn"`
	Format  string   `toml:"format"`
	Defines []string `toml:"defines"`
}

type styleConfig struct {
	Warn       uint `toml:"warn"`
	ColorNames bool `toml:"color_names"`
}

type outputConfig struct {
	Dir    string `toml:"dir"`
	Suffix string `toml:"suffix"`
}

type cacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// findSquishToml walks from startDir toward the filesystem root looking
// for a squish.toml.
func findSquishToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "squish.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectConfig returns the nearest squish.toml, or zero defaults when
// the project carries none.
func loadProjectConfig(startDir string) (projectConfig, bool, error) {
	path, ok, err := findSquishToml(startDir)
	if err != nil || !ok {
		return projectConfig{}, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return projectConfig{}, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Script.Format != "" && cfg.Script.Format != "standard" && cfg.Script.Format != "json" {
		return projectConfig{}, true, fmt.Errorf("%s: invalid [script].format %q (expected standard or json)", path, cfg.Script.Format)
	}
	return cfg, true, nil
}
