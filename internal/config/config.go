// Package config loads the optional ~/.taskr.yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath        string    `yaml:"db_path"`
	SweepInterval string    `yaml:"sweep_interval"` // Go duration string, e.g. "2m"
	MaxHours      int       `yaml:"max_hours"`
	MinuteStep    int       `yaml:"minute_step"`
	Log           LogConfig `yaml:"log"`
}

type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Default() Config {
	return Config{
		SweepInterval: "2m",
		MaxHours:      24,
		MinuteStep:    1,
		Log: LogConfig{
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// DefaultPath returns ~/.taskr.yaml, overridable via TASKR_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv("TASKR_CONFIG"); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".taskr.yaml"), nil
}

// Load reads the config at path, falling back to defaults when the file
// does not exist. Unset fields keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Interval parses the sweep interval, defaulting to 2 minutes on any
// missing or malformed value.
func (c Config) Interval() time.Duration {
	d, err := time.ParseDuration(c.SweepInterval)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}
