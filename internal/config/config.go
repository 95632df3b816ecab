// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server needs from its environment.
type Config struct {
	Port        int    `env:"HUNT_PORT" envDefault:"4000"`
	StoragePath string `env:"HUNT_DB_PATH" envDefault:"hunt.db"`

	// RedisAddr switches the session store from in-memory to Redis when
	// set (host:port).
	RedisAddr     string `env:"HUNT_REDIS_ADDR"`
	RedisPassword string `env:"HUNT_REDIS_PASSWORD"`
	RedisDB       int    `env:"HUNT_REDIS_DB" envDefault:"0"`

	// AdminToken guards the admin CRUD routes; empty refuses all admin
	// requests.
	AdminToken string `env:"HUNT_ADMIN_TOKEN"`

	SessionTTL  time.Duration `env:"HUNT_SESSION_TTL" envDefault:"2h"`
	SweepPeriod time.Duration `env:"HUNT_SWEEP_PERIOD" envDefault:"10m"`

	AllowedOrigins []string `env:"HUNT_ALLOWED_ORIGINS" envSeparator:","`
}

// Load parses the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
