package app

import (
	"fmt"
	"os"
	"path/filepath"

	"fid-go/internal/config"
)

const (
	envConfigPath = "FID_CONFIG_PATH"
	envHome       = "FID_HOME"
)

// Defaults holds the locations fid uses when no flag overrides them.
type Defaults struct {
	// ConfigPath is the TOML config file, from FID_CONFIG_PATH or ~/.config/fid.toml.
	ConfigPath string
	// BaseDir roots logs and the protect file, from FID_HOME or ~/.local/share/fid.
	BaseDir string
}

// GetDefaults resolves Defaults from the environment and the home directory.
func GetDefaults() (Defaults, error) {
	configPath, err := envOrHome(envConfigPath, ".config", "fid.toml")
	if err != nil {
		return Defaults{}, err
	}
	baseDir, err := envOrHome(envHome, ".local", "share", "fid")
	if err != nil {
		return Defaults{}, err
	}
	return Defaults{ConfigPath: configPath, BaseDir: baseDir}, nil
}

// NewConfig returns the built-in config rooted at BaseDir.
func (d Defaults) NewConfig() *config.Config {
	return config.NewConfig(d.BaseDir)
}

// LoadConfig reads ConfigPath, using built-in values for anything it omits
// and for a missing file.
func (d Defaults) LoadConfig() (*config.Config, error) {
	return config.ReadOrDefault(d.ConfigPath, d.BaseDir)
}

// envOrHome returns $env when set, else the home directory joined with rel.
func envOrHome(env string, rel ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{home}, rel...)...), nil
}
