// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"purls/internal/log"
)

// Prefix is prepended to every environment variable, e.g. PURLS_PORT.
const Prefix = "PURLS"

type Config struct {
	Port              int           `envconfig:"PORT" default:"8080"`
	MaxRedirects      int           `envconfig:"MAX_REDIRECTS" default:"10"`
	MaxRedirectsLimit int           `envconfig:"MAX_REDIRECTS_LIMIT" default:"50"`
	HopTimeout        time.Duration `envconfig:"HOP_TIMEOUT" default:"10s"`
	UserAgent         string        `envconfig:"USER_AGENT" default:"purls"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	Concurrency       int           `envconfig:"CONCURRENCY" default:"4"`
}

// Load reads .env (outside production) and then the PURLS_* environment.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if env != "production" && env != "prod" {
		if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
			log.Warn("unable to load .env file: %v", err)
		}
	}
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	if c.MaxRedirectsLimit < 1 {
		c.MaxRedirectsLimit = 1
	}
	if c.MaxRedirects < 0 {
		c.MaxRedirects = 0
	}
	if c.MaxRedirects > c.MaxRedirectsLimit {
		c.MaxRedirects = c.MaxRedirectsLimit
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.HopTimeout <= 0 {
		c.HopTimeout = 10 * time.Second
	}
}
