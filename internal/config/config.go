// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Supported values of STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultSQLitePath is the database file used when SQLITE_PATH is unset.
const DefaultSQLitePath = "motoTripPlanner.db"

// Config holds all configuration values for motoctl.
// Values are populated by Load from environment variables.
type Config struct {
	// DevBypassAuth selects lenient auth: any email signs in and Register
	// behaves like Login. Defaults to true; set DEV_BYPASS_AUTH=false for
	// strict credential checks.
	DevBypassAuth bool

	// StoreDriver picks the KeyStore backend: memory, sqlite or postgres.
	// Defaults to "sqlite".
	StoreDriver string

	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string

	// DatabaseURL is the Postgres connection string. Required when
	// StoreDriver is "postgres".
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from environment variables and returns a Config.
// Empty variables count as unset.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DEV_BYPASS_AUTH", true)
	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("SQLITE_PATH", DefaultSQLitePath)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := Config{
		DevBypassAuth: v.GetBool("DEV_BYPASS_AUTH"),
		StoreDriver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("required environment variables not set: DATABASE_URL (STORE_DRIVER=%s)", cfg.StoreDriver)
		}
	default:
		return Config{}, fmt.Errorf("invalid STORE_DRIVER %q: want %s, %s or %s", cfg.StoreDriver, DriverMemory, DriverSQLite, DriverPostgres)
	}

	return cfg, nil
}
