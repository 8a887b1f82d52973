package scans

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/docmatrix/internal/similarity"
)

// Config tunes the scan pipeline.
type Config struct {
	// DefaultThreshold applies when a request omits one. Defaults to 70.
	DefaultThreshold float64 `toml:"default_threshold"`
	// MaxComparisonLength truncates normalized text, in characters. Defaults to 5000.
	MaxComparisonLength int `toml:"max_comparison_length"`
	// Workers bounds concurrent pair scoring. 1 scores sequentially.
	Workers int `toml:"workers"`
}

// Env maps environment variable names for scan configuration.
type Env struct {
	DefaultThreshold    string
	MaxComparisonLength string
	Workers             string
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		if err := c.loadEnv(env); err != nil {
			return err
		}
	}
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultThreshold != 0 {
		c.DefaultThreshold = overlay.DefaultThreshold
	}
	if overlay.MaxComparisonLength != 0 {
		c.MaxComparisonLength = overlay.MaxComparisonLength
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultThreshold == 0 {
		c.DefaultThreshold = 70
	}
	if c.MaxComparisonLength == 0 {
		c.MaxComparisonLength = similarity.DefaultMaxComparisonLength
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
}

func (c *Config) loadEnv(env *Env) error {
	if v := os.Getenv(env.DefaultThreshold); env.DefaultThreshold != "" && v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env.DefaultThreshold, err)
		}
		c.DefaultThreshold = t
	}
	if v := os.Getenv(env.MaxComparisonLength); env.MaxComparisonLength != "" && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env.MaxComparisonLength, err)
		}
		c.MaxComparisonLength = n
	}
	if v := os.Getenv(env.Workers); env.Workers != "" && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env.Workers, err)
		}
		c.Workers = n
	}
	return nil
}

func (c *Config) validate() error {
	if c.DefaultThreshold < 0 || c.DefaultThreshold > 100 {
		return fmt.Errorf("default_threshold must be between 0 and 100")
	}
	if c.MaxComparisonLength < 1 {
		return fmt.Errorf("max_comparison_length must be positive")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	return nil
}
