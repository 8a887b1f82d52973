package embeddings

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds embedding provider settings.
type Config struct {
	Enabled     bool   `toml:"enabled"`
	BaseURL     string `toml:"base_url"`
	APIKey      string `toml:"api_key"`
	Timeout     string `toml:"timeout"`
	MinInterval string `toml:"min_interval"`
}

// Env maps environment variable names for Config.
type Env struct {
	Enabled     string
	BaseURL     string
	APIKey      string
	Timeout     string
	MinInterval string
}

// TimeoutDuration returns the per-request HTTP timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MinIntervalDuration returns the minimum spacing between provider requests.
func (c *Config) MinIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.MinInterval)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero overlay values. Enabled always takes the overlay value.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MinInterval != "" {
		c.MinInterval = overlay.MinInterval
	}
}

func (c *Config) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
	if c.MinInterval == "" {
		c.MinInterval = "200ms"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.Enabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := getenv(env.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(env.APIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(env.Timeout); v != "" {
		c.Timeout = v
	}
	if v := getenv(env.MinInterval); v != "" {
		c.MinInterval = v
	}
}

func (c *Config) validate() error {
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout: %q", c.Timeout)
	}
	if d, err := time.ParseDuration(c.MinInterval); err != nil || d < 0 {
		return fmt.Errorf("invalid min_interval: %q", c.MinInterval)
	}
	if c.Enabled && c.BaseURL == "" {
		return fmt.Errorf("base_url required when embedding is enabled")
	}
	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
