package credits

import (
	"fmt"
	"os"
	"strconv"
)

// Config sets the daily scan allowance.
type Config struct {
	// DailyLimit is the number of scans a non-admin user may run per day. Defaults to 20.
	DailyLimit int `toml:"daily_limit"`
}

// Env maps environment variable names for credit configuration.
type Env struct {
	DailyLimit string
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *Config) Finalize(env *Env) error {
	if c.DailyLimit == 0 {
		c.DailyLimit = 20
	}
	if env != nil && env.DailyLimit != "" {
		if v := os.Getenv(env.DailyLimit); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", env.DailyLimit, err)
			}
			c.DailyLimit = n
		}
	}
	if c.DailyLimit < 1 {
		return fmt.Errorf("daily_limit must be at least 1")
	}
	return nil
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.DailyLimit != 0 {
		c.DailyLimit = overlay.DailyLimit
	}
}
