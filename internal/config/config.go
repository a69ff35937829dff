// Package config reads server and client settings from the environment.
// A .env file in the working directory is loaded first when present; real
// environment variables take precedence over it.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port        int
	DBDriver    string
	DBPath      string
	DatabaseURL string
	StaticPath  string
	LogLevel    string
	SeedPath    string

	GrantSecret   string
	GrantTTL      time.Duration
	StoreTimeout  time.Duration
	SweepInterval time.Duration

	UnlockRate  float64
	UnlockBurst int

	ServerURL  string
	DeviceFile string
}

// Load returns the configuration with defaults applied.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:    getEnv("DB_DRIVER", DriverSQLite),
		DBPath:      getEnv("DB_PATH", "./data/officeplan.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StaticPath:  getEnv("STATIC_PATH", "./static"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SeedPath:    os.Getenv("SEED_PATH"),
		GrantSecret: os.Getenv("GRANT_SECRET"),
		ServerURL:   getEnv("SERVER_URL", "http://localhost:8080"),
		DeviceFile:  os.Getenv("DEVICE_FILE"),
	}

	var err error
	if cfg.Port, err = getInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.GrantTTL, err = getDuration("GRANT_TTL", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.UnlockRate, err = getFloat("UNLOCK_RATE", 1); err != nil {
		return nil, err
	}
	if cfg.UnlockBurst, err = getInt("UNLOCK_BURST", 5); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.GrantSecret == "" {
		if cfg.GrantSecret, err = randomSecret(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

// Grants signed with a per-process secret stop validating on restart, which
// only costs a user one more password prompt.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate grant secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
