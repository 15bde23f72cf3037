// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by every command.
type Config struct {
	GraphPath string `env:"SHADOW_GRAPH_PATH" envDefault:"dialogues.json"`
	DBPath    string `env:"SHADOW_DB"`
	// Seed for the dice. Zero draws a fresh seed per run.
	Seed  int64  `env:"SHADOW_SEED" envDefault:"0"`
	Start string `env:"SHADOW_START" envDefault:"Start"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and fills the save database
// path when it is unset.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	return cfg, nil
}

// DefaultDBPath is ~/.shadow-soldiers/saves.db.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".shadow-soldiers", "saves.db")
}
