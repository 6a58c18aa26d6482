package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile overlays the YAML document onto cfg. Keys missing from the file
// keep their current values; unknown keys are rejected.
func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if val := os.Getenv("AMBIENT_POLICY"); val != "" {
		cfg.Draw.Policy = strings.ToLower(val)
	}
	if val := os.Getenv("AMBIENT_LOG_LEVEL"); val != "" {
		cfg.Log.Level = strings.ToLower(val)
	}
	if val := os.Getenv("AMBIENT_FULLSCREEN"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("AMBIENT_FULLSCREEN: %w", err)
		}
		cfg.Window.Fullscreen = b
	}
	if val := os.Getenv("AMBIENT_WIDTH"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("AMBIENT_WIDTH: %w", err)
		}
		cfg.Window.Width = n
	}
	if val := os.Getenv("AMBIENT_HEIGHT"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("AMBIENT_HEIGHT: %w", err)
		}
		cfg.Window.Height = n
	}
	return nil
}
