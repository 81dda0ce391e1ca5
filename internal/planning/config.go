package planning

import (
	"os"
	"strconv"
	"time"
)

// Config bounds the cost of assembling and rendering one context.
type Config struct {
	FetchTimeout   time.Duration
	MaxLots        int
	MaxTasksPerLot int
	MaxFieldRunes  int
	MaxBytes       int
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		FetchTimeout:   5 * time.Second,
		MaxLots:        30,
		MaxTasksPerLot: 25,
		MaxFieldRunes:  200,
		MaxBytes:       256 << 10,
	}
}

// LoadConfig reads planning limits from environment variables,
// falling back to defaults for unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CHANTIER_FETCH_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeout = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("CHANTIER_MAX_LOTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxLots = n
		}
	}
	if v := os.Getenv("CHANTIER_MAX_TASKS_PER_LOT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTasksPerLot = n
		}
	}
	if v := os.Getenv("CHANTIER_MAX_FIELD_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxFieldRunes = n
		}
	}
	if v := os.Getenv("CHANTIER_MAX_SNAPSHOT_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxBytes = n
		}
	}
	return cfg
}

// Limits returns the serializer bounds of cfg.
func (c Config) Limits() Limits {
	return Limits{
		MaxLots:        c.MaxLots,
		MaxTasksPerLot: c.MaxTasksPerLot,
		MaxFieldRunes:  c.MaxFieldRunes,
		MaxBytes:       c.MaxBytes,
	}
}
