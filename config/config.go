// Package config loads flipbook defaults from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-provided defaults. Command-line flags
// override every field.
type Config struct {
	Interval float64 `env:"FLIPBOOK_INTERVAL"  envDefault:"0.1"`
	Width    int     `env:"FLIPBOOK_WIDTH"     envDefault:"800"`
	Split    float64 `env:"FLIPBOOK_SPLIT"     envDefault:"0.5"`
	FontSize int     `env:"FLIPBOOK_FONT_SIZE" envDefault:"40"`
	Border   bool    `env:"FLIPBOOK_BORDER"    envDefault:"true"`
	FontPath string  `env:"FLIPBOOK_FONT"`
	Decoder  string  `env:"FLIPBOOK_DECODER"   envDefault:"auto"`
	LogLevel string  `env:"FLIPBOOK_LOG_LEVEL" envDefault:"info"`
	DBPath   string  `env:"FLIPBOOK_DB_PATH"`
	History  bool    `env:"FLIPBOOK_HISTORY"   envDefault:"true"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabasePath returns the configured history database location, falling
// back to ~/.local/share/flipbook-cli/data.db.
func (c *Config) DatabasePath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "flipbook-cli", "data.db"), nil
}
