package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded config cannot drive the viewer.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the renderer and chart layout depend on.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	case c.Data.ModelPath == "":
		return fmt.Errorf("%w: data.model_path is empty", ErrInvalidConfig)
	case c.Data.StocksPath == "":
		return fmt.Errorf("%w: data.stocks_path is empty", ErrInvalidConfig)
	case c.Chart.BarSpacing <= 0 || c.Chart.TimeSpacing <= 0:
		return fmt.Errorf("%w: bar spacing must be positive", ErrInvalidConfig)
	case c.Chart.PriceFloor < 0:
		return fmt.Errorf("%w: price floor %v is negative", ErrInvalidConfig, c.Chart.PriceFloor)
	case c.Chart.UpdateJitter < 0 || c.Chart.UpdateJitter >= 1:
		return fmt.Errorf("%w: update jitter %v outside [0, 1)", ErrInvalidConfig, c.Chart.UpdateJitter)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip range [%v, %v]", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "StockBars")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "StockBars")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "stockbars")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "stockbars")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
