// Package config loads dtop's YAML configuration file and merges it with
// CLI flags, mirroring the layered configuration the original Rust CLI
// implemented (see SPEC_FULL.md §6).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HostEntry is one fleet member as written in the config file.
type HostEntry struct {
	Name    string   `yaml:"name,omitempty"`
	Host    string   `yaml:"host"`
	Filters []string `yaml:"filters,omitempty"`
}

// Config is the on-disk schema. Every field has a CLI-flag counterpart;
// Merge decides precedence between the two.
type Config struct {
	Hosts            []HostEntry `yaml:"hosts"`
	LogsBufferLength int         `yaml:"logs_buffer_length,omitempty"`
	RefreshSeconds   int         `yaml:"refresh_seconds,omitempty"`
	ShowAll          bool        `yaml:"show_all,omitempty"`
	IconSet          string      `yaml:"icons,omitempty"`
}

// Default is the configuration used when no file is found: a single local
// daemon connection.
func Default() Config {
	return Config{
		Hosts:            []HostEntry{{Host: "local"}},
		LogsBufferLength: 10000,
		RefreshSeconds:   5,
		IconSet:          "unicode",
	}
}

// SearchPaths returns the ordered list of locations Load checks, following
// the usual XDG-then-home-then-cwd convention: a path given explicitly by
// the caller always wins, then $XDG_CONFIG_HOME/dtop/config.yaml, then
// ~/.config/dtop/config.yaml, then ./dtop.yaml.
func SearchPaths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}

	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "dtop", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "dtop", "config.yaml"))
	}
	paths = append(paths, "dtop.yaml")
	return paths
}

// Load reads the first existing file among SearchPaths(explicit). Finding
// no file at all is not an error: Default() is used instead, so dtop works
// unconfigured against the local daemon.
func Load(explicit string) (Config, error) {
	for _, path := range SearchPaths(explicit) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		return applyDefaults(cfg), nil
	}
	return Default(), nil
}

func applyDefaults(cfg Config) Config {
	if len(cfg.Hosts) == 0 {
		cfg.Hosts = []HostEntry{{Host: "local"}}
	}
	if cfg.LogsBufferLength == 0 {
		cfg.LogsBufferLength = 10000
	}
	if cfg.RefreshSeconds == 0 {
		cfg.RefreshSeconds = 5
	}
	if cfg.IconSet == "" {
		cfg.IconSet = "unicode"
	}
	return cfg
}
