// Package config loads and persists sentinel's user configuration from
// $XDG_CONFIG_HOME/sentinel/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnergyThreshold names a confidence cutoff preset.
type EnergyThreshold string

const (
	ThresholdLow    EnergyThreshold = "low"
	ThresholdMedium EnergyThreshold = "medium"
	ThresholdHigh   EnergyThreshold = "high"
)

// Config is the persisted user configuration.
type Config struct {
	// EnergyThreshold selects which collisions are worth reporting.
	EnergyThreshold EnergyThreshold `yaml:"energy_threshold"`

	// MaxDepth is the minimum path length treated as a collision.
	MaxDepth int `yaml:"max_depth"`

	// HopTimeout bounds each traversal hop during async detection.
	HopTimeout time.Duration `yaml:"hop_timeout"`

	Similarity SimilarityConfig `yaml:"similarity"`

	// Keywords override the built-in domain keyword sets when non-empty.
	Keywords KeywordConfig `yaml:"keywords"`
}

// SimilarityConfig tunes node consolidation.
type SimilarityConfig struct {
	Threshold    int `yaml:"threshold"`
	KeywordBoost int `yaml:"keyword_boost"`
	BoostGate    int `yaml:"boost_gate"`
}

// KeywordConfig carries user keyword overrides.
type KeywordConfig struct {
	Energy       []string `yaml:"energy,omitempty"`
	Social       []string `yaml:"social,omitempty"`
	Professional []string `yaml:"professional,omitempty"`
	Health       []string `yaml:"health,omitempty"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		EnergyThreshold: ThresholdMedium,
		MaxDepth:        3,
		HopTimeout:      5 * time.Second,
		Similarity: SimilarityConfig{
			Threshold:    70,
			KeywordBoost: 20,
			BoostGate:    40,
		},
	}
}

// ConfidenceThreshold maps the named preset to a numeric cutoff.
func (c Config) ConfidenceThreshold() float64 {
	switch c.EnergyThreshold {
	case ThresholdLow:
		return 0.3
	case ThresholdHigh:
		return 0.7
	default:
		return 0.5
	}
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	switch c.EnergyThreshold {
	case ThresholdLow, ThresholdMedium, ThresholdHigh:
	default:
		return fmt.Errorf("unknown energy_threshold %q", c.EnergyThreshold)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.HopTimeout < 0 {
		return fmt.Errorf("hop_timeout must not be negative, got %s", c.HopTimeout)
	}
	if c.Similarity.Threshold < 0 || c.Similarity.Threshold > 100 {
		return fmt.Errorf("similarity.threshold must be in [0,100], got %d", c.Similarity.Threshold)
	}
	return nil
}

// Dir returns the sentinel config directory, honoring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sentinel"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sentinel"), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file, returning defaults when it does not exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path. Missing file yields
// the defaults; a malformed file is an error so a typo never silently
// reverts the user to stock settings.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config to its default path, creating directories with
// owner-only permissions and replacing the file atomically.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to an explicit path.
func SaveTo(cfg Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
