// Package config loads runtime settings.
//
// Sources, lowest precedence first: built-in defaults, the YAML file named by
// FATROBIN_CONFIG, a .env file (FATROBIN_ENV_FILE, default ".env"), and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"fatrobin/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config captures the runtime configuration for the server.
type Config struct {
	Addr          string           `yaml:"addr"`
	LogLevel      string           `yaml:"log_level"`
	Potencies     []domain.Potency `yaml:"potencies"`
	SessionTTL    time.Duration    `yaml:"session_ttl"`
	SweepInterval time.Duration    `yaml:"sweep_interval"`

	// CompressMinSize is the smallest response body that is gzipped.
	// Negative disables compression.
	CompressMinSize int `yaml:"compress_min_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:          ":8080",
		LogLevel:      "info",
		Potencies:     append([]domain.Potency(nil), domain.DefaultPotencies...),
		SessionTTL:    12 * time.Hour,
		SweepInterval: 10 * time.Minute,

		CompressMinSize: 1024,
	}
}

// Load builds a Config from every source.
func Load() (Config, error) {
	envFile := env("FATROBIN_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()
	if path := os.Getenv("FATROBIN_CONFIG"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Addr = env("ADDR", c.Addr)
	c.LogLevel = env("LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("POTENCIES"); v != "" {
		ps, err := ParsePotencies(v)
		if err != nil {
			return fmt.Errorf("POTENCIES: %w", err)
		}
		c.Potencies = ps
	}

	var err error
	if c.SessionTTL, err = durationEnv("SESSION_TTL", c.SessionTTL); err != nil {
		return err
	}
	if c.SweepInterval, err = durationEnv("SWEEP_INTERVAL", c.SweepInterval); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("COMPRESS_MIN_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COMPRESS_MIN_SIZE: %w", err)
		}
		c.CompressMinSize = n
	}
	return nil
}

// Validate checks that the configuration can run a server.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("server address must not be empty")
	}
	if err := domain.ValidatePotencies(c.Potencies); err != nil {
		return fmt.Errorf("potencies: %w", err)
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.SweepInterval <= 0 {
		return errors.New("sweep interval must be positive")
	}
	return nil
}

// ParsePotencies parses a comma separated potency list such as "10000,35000".
func ParsePotencies(s string) ([]domain.Potency, error) {
	var out []domain.Potency
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid potency %q", part)
		}
		out = append(out, domain.Potency(n))
	}
	if err := domain.ValidatePotencies(out); err != nil {
		return nil, err
	}
	return out, nil
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
