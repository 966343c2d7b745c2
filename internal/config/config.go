// Package config loads the tool's optional YAML configuration file.
//
// Everything has a working default: no file is required, and a missing
// search-path file is not an error. An explicitly named file must exist.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full tool configuration.
type Config struct {
	// DataDir holds the revert journal, the applied-preference ledger, and
	// the adapter snapshot cache.
	DataDir string `yaml:"data_dir"`

	// SnapshotMaxAge bounds how long a cached adapter snapshot is served
	// before re-enumeration. Zero serves it until an explicit refresh.
	SnapshotMaxAge Duration `yaml:"snapshot_max_age"`

	// Store selects the preference store backend: "auto" picks the live
	// platform store, "memory" forces the in-process one (a standing
	// dry-run). Empty means auto.
	Store string `yaml:"store"`

	Log LogConfig `yaml:"log"`
}

// MemoryStore reports whether the in-process store backend is selected.
func (c *Config) MemoryStore() bool { return strings.EqualFold(c.Store, "memory") }

// LogConfig controls diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Unknown names mean info.
	Level string `yaml:"level"`

	// File receives JSON log lines when set; otherwise logs go to stderr
	// (and only when verbose output is requested).
	File string `yaml:"file"`
}

// SlogLevel maps the configured level name onto slog's scale.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Duration wraps time.Duration so YAML values like "24h" or "90m" parse.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir:        defaultDataDir(),
		SnapshotMaxAge: Duration{24 * time.Hour},
		Store:          "auto",
		Log:            LogConfig{Level: "info"},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gpupref"
	}
	return filepath.Join(home, ".gpupref")
}

// JournalPath is the revert journal's backing file.
func (c *Config) JournalPath() string { return filepath.Join(c.DataDir, "pending_reverts.json") }

// AppliedPath is the applied-preference ledger's backing file.
func (c *Config) AppliedPath() string { return filepath.Join(c.DataDir, "applied.json") }

// SnapshotPath is the adapter snapshot cache file.
func (c *Config) SnapshotPath() string { return filepath.Join(c.DataDir, "adapters.json") }

// Load reads the configuration at path, or searches the default locations
// when path is empty: <data_dir>/config.yaml, then ./gpupref.yaml. Values
// overlay the defaults, so a partial file is fine.
func Load(path string) (*Config, error) {
	cfg := Default()

	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		for _, candidate := range []string{
			filepath.Join(cfg.DataDir, "config.yaml"),
			"gpupref.yaml",
		} {
			data, err = os.ReadFile(candidate)
			if err == nil {
				path = candidate
				break
			}
		}
		if err != nil {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	switch strings.ToLower(cfg.Store) {
	case "", "auto", "memory":
	default:
		// A typo here must not silently fall through to the live registry.
		return nil, fmt.Errorf("config file %s: unknown store %q (use auto or memory)", path, cfg.Store)
	}
	return cfg, nil
}
