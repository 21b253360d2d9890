package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for fid.
type Config struct {
	BaseDir  string        `toml:"base_dir"`
	LogDir   string        `toml:"log_dir"`
	LogLevel string        `toml:"log_level"` // "debug", "info" (default), "warn" or "error"
	Remove   RemoveConfig  `toml:"remove"`
	Metrics  MetricsConfig `toml:"metrics"`
}

// RemoveConfig controls the safety checks applied before fid rm deletes anything.
type RemoveConfig struct {
	// Protect lists glob patterns that may never be removed.
	// Patterns without '/' match the basename; patterns with '/' match the
	// absolute path and everything beneath it.
	Protect []string `toml:"protect"`
	// ProtectFile is an optional file with one pattern per line.
	ProtectFile string `toml:"protect_file,omitempty"`
	// Confirm asks for y/N confirmation when stdin is a terminal.
	Confirm bool `toml:"confirm"`
}

// MetricsConfig controls the Prometheus textfile output.
type MetricsConfig struct {
	Textfile string `toml:"textfile,omitempty"` // empty disables metrics output
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// NewConfig creates a new Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		LogLevel: "info",
		Remove: RemoveConfig{
			ProtectFile: filepath.Join(baseDir, "protect"),
			Confirm:     true,
		},
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.LogDir == "" {
		return fmt.Errorf("log_dir must be set")
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader. Keys absent from the
// input keep their zero value; use ReadOver to keep defaults instead.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	return m.ReadOver(r, &Config{})
}

// ReadOver decodes r on top of a copy of base, so keys absent from the
// input keep base's values.
func (m *Manager) ReadOver(r io.Reader, base *Config) (*Config, error) {
	cfg := *base
	cfg.Remove.Protect = append([]string(nil), base.Remove.Protect...)
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path. Values the file
// leaves out fall back to NewConfig(baseDir).
func ReadFromFile(path, baseDir string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.ReadOver(f, NewConfig(baseDir))
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ReadOrDefault reads the config at path, falling back to NewConfig(baseDir)
// when no config file exists. fid works without running config init.
func ReadOrDefault(path, baseDir string) (*Config, error) {
	cfg, err := ReadFromFile(path, baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return NewConfig(baseDir), nil
	}
	return cfg, err
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
