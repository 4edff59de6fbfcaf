package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/tjporte/internal/decision"
	"github.com/ppiankov/tjporte/internal/ratelimit"
	"github.com/ppiankov/tjporte/internal/roles"
)

// TokenEnv is the environment variable holding the bot token.
const TokenEnv = "DISCORD_TOKEN"

// ErrMissingToken is returned when TokenEnv is unset or blank.
var ErrMissingToken = errors.New("bot token not set")

// Config holds all bot settings except the token.
type Config struct {
	GuildID         string           `yaml:"guild_id"`
	Roles           roles.Table      `yaml:"roles"`
	DecisionTimeout time.Duration    `yaml:"decision_timeout"`
	FormTimeout     time.Duration    `yaml:"form_timeout"`
	RateLimit       ratelimit.Config `yaml:"rate_limit"`
	MetricsAddr     string           `yaml:"metrics_addr"`
	LogLevel        string           `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Roles:           roles.DefaultTable(),
		DecisionTimeout: decision.DefaultTimeout,
		FormTimeout:     15 * time.Minute,
		LogLevel:        "info",
	}
}

// DefaultPath returns ~/.tjporte/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tjporte", "config.yaml")
	}
	return filepath.Join(home, ".tjporte", "config.yaml")
}

// Load reads configuration from a YAML file.
// Empty path falls back to DefaultPath. Missing file returns defaults.
// Invalid YAML or an invalid role table returns an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Start with defaults, YAML overwrites only specified fields
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if err := c.Roles.Validate(); err != nil {
		return fmt.Errorf("invalid roles: %w", err)
	}
	if c.DecisionTimeout <= 0 {
		return fmt.Errorf("decision_timeout must be positive, got %s", c.DecisionTimeout)
	}
	if c.FormTimeout <= 0 {
		return fmt.Errorf("form_timeout must be positive, got %s", c.FormTimeout)
	}
	if c.RateLimit.PerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Token reads the bot token from the environment.
func Token() (string, error) {
	tok := strings.TrimSpace(os.Getenv(TokenEnv))
	if tok == "" {
		return "", ErrMissingToken
	}
	return tok, nil
}

// ParseLevel maps a log_level string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
	}
}
