// Package config loads dashboard settings from ~/.paperradar/config.json,
// overlaid with PAPERRADAR_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jpreyes/paperradar/internal/feed"
)

// EnvPrefix is prepended to every env tag.
const EnvPrefix = "PAPERRADAR_"

// Config is the persistent application configuration
type Config struct {
	APIBaseURL        string  `json:"api_base_url" env:"API_BASE_URL"`
	DefaultChatID     int64   `json:"default_chat_id,omitempty" env:"CHAT_ID"`
	PageSize          int     `json:"page_size" env:"PAGE_SIZE"`
	SortKey           string  `json:"sort_key" env:"SORT_KEY"`
	SortDir           string  `json:"sort_dir" env:"SORT_DIR"`
	JournalsLimit     int     `json:"journals_limit" env:"JOURNALS_LIMIT"`
	RequestTimeoutSec int     `json:"request_timeout_sec" env:"REQUEST_TIMEOUT_SEC"`
	RateLimitPerSec   float64 `json:"rate_limit_per_sec" env:"RATE_LIMIT_PER_SEC"`
	LivePollSec       int     `json:"live_poll_sec,omitempty" env:"LIVE_POLL_SEC"`
	DataDir           string  `json:"data_dir,omitempty" env:"DATA_DIR"`
	LogLevel          string  `json:"log_level" env:"LOG_LEVEL"`
}

const (
	defaultJournalsLimit = 10
	maxJournalsLimit     = 30 // server accepts 1..30
	defaultTimeoutSec    = 20
)

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:        "http://localhost:8000",
		PageSize:          feed.DefaultPageSize,
		SortKey:           string(feed.DefaultSort.Key),
		SortDir:           string(feed.DefaultSort.Direction),
		JournalsLimit:     defaultJournalsLimit,
		RequestTimeoutSec: defaultTimeoutSec,
		RateLimitPerSec:   5,
		LogLevel:          "info",
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paperradar", "config.json")
}

// Load reads config from path, or returns defaults if the file does not
// exist. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes config to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads .env files (the working directory's .env when none are
// given) and overlays PAPERRADAR_* variables. Variables already set in the
// environment win over .env values.
func (c *Config) ApplyEnv(dotenv ...string) error {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Normalize clamps numeric settings into range and replaces invalid values
// with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.APIBaseURL == "" {
		c.APIBaseURL = def.APIBaseURL
	}
	c.PageSize = feed.ClampPageSizeInt(c.PageSize, feed.DefaultPageSize)

	if key, ok := feed.ParseSortKey(c.SortKey); ok {
		c.SortKey = string(key)
	} else {
		c.SortKey = def.SortKey
		c.SortDir = def.SortDir
	}
	c.SortDir = string(feed.ParseDirection(c.SortDir))

	if c.JournalsLimit <= 0 {
		c.JournalsLimit = defaultJournalsLimit
	}
	c.JournalsLimit = min(c.JournalsLimit, maxJournalsLimit)

	if c.RequestTimeoutSec <= 0 {
		c.RequestTimeoutSec = defaultTimeoutSec
	}
	if c.RateLimitPerSec < 0 {
		c.RateLimitPerSec = 0
	}
	if c.LivePollSec < 0 {
		c.LivePollSec = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Sort returns the configured sort selection.
func (c *Config) Sort() feed.SortSpec {
	key, ok := feed.ParseSortKey(c.SortKey)
	if !ok {
		return feed.DefaultSort
	}
	return feed.SortSpec{Key: key, Direction: feed.ParseDirection(c.SortDir)}
}

// SetSort stores a sort selection.
func (c *Config) SetSort(spec feed.SortSpec) {
	c.SortKey = string(spec.Key)
	c.SortDir = string(spec.Direction)
}

// RequestTimeout is RequestTimeoutSec as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// LivePoll is the live refresh interval; zero disables polling.
func (c *Config) LivePoll() time.Duration {
	return time.Duration(c.LivePollSec) * time.Second
}

// DataPath returns the directory for logs and the seen ledger.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Dir(ConfigPath())
}

// LedgerPath returns the seen ledger database path.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.DataPath(), "seen.db")
}
