// Package config loads kiosk settings from PATHGUARD_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries every tunable the kiosk reads at startup.
type Config struct {
	// PortalEndpoint is the base URL of the timekeeping portal.
	PortalEndpoint string `env:"PATHGUARD_PORTAL_ENDPOINT" envDefault:"http://localhost:8085"`
	WarehouseID    string `env:"PATHGUARD_WAREHOUSE_ID" envDefault:""`

	// DBPath locates the SQLite database. Empty means ~/.pathguard/pathguard.db.
	DBPath string `env:"PATHGUARD_DB_PATH" envDefault:""`
	// PathsFile optionally overrides the built-in restricted path table
	// with a YAML file. Alias lists are tuned per site.
	PathsFile string `env:"PATHGUARD_PATHS_FILE" envDefault:""`

	// MaxMinutes is the time ceiling on one restricted path.
	MaxMinutes float64 `env:"PATHGUARD_MAX_MINUTES" envDefault:"270"`
	// Debounce is the scanner quiet period before a lookup fires.
	Debounce time.Duration `env:"PATHGUARD_DEBOUNCE" envDefault:"150ms"`
	// RosterFreshness bounds how old a cached roster may be before it is
	// refetched.
	RosterFreshness time.Duration `env:"PATHGUARD_ROSTER_FRESHNESS" envDefault:"30m"`
	// PendingMaxAge bounds resumption of lookups left pending across a
	// portal navigation or restart.
	PendingMaxAge time.Duration `env:"PATHGUARD_PENDING_MAX_AGE" envDefault:"30s"`
	MinBadgeLen   int           `env:"PATHGUARD_MIN_BADGE_LEN" envDefault:"3"`

	PortalTimeoutMs int           `env:"PATHGUARD_PORTAL_TIMEOUT_MS" envDefault:"10000"`
	PortalRetries   int           `env:"PATHGUARD_PORTAL_RETRIES" envDefault:"2"`
	ProbeAttempts   int           `env:"PATHGUARD_PROBE_ATTEMPTS" envDefault:"3"`
	ProbeInterval   time.Duration `env:"PATHGUARD_PROBE_INTERVAL" envDefault:"500ms"`

	// RosterWarnMinutes flags roster entries at or above this total when
	// rendering.
	RosterWarnMinutes float64 `env:"PATHGUARD_ROSTER_WARN_MINUTES" envDefault:"240"`

	// LogCalls mirrors portal and coordinator events to stderr.
	LogCalls bool `env:"PATHGUARD_LOG" envDefault:"false"`

	// CacheQuickCheck enables pre-verdicting a scan from the roster cache
	// alone. Off by default: scanned badge ids and portal employee ids
	// are not the same identifier space, so a cache hit cannot be trusted
	// to mean the scanned associate.
	CacheQuickCheck bool `env:"PATHGUARD_CACHE_QUICK_CHECK" envDefault:"false"`
}

// Load reads configuration from the environment and fills in the derived
// database path default.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".pathguard", "pathguard.db")
	}
	return cfg, nil
}
