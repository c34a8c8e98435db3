// Package config loads the bot configuration from a TOML file, an optional
// .env file and MATCHY_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/icssc/matchy-meetups-bot/pairing"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type PairingConfig struct {
	RoleName        string `toml:"role_name"`
	MaxParticipants int    `toml:"max_participants"`
	StrictNovelty   bool   `toml:"strict_novelty"`
}

type HistoryConfig struct {
	WindowDays  int `toml:"window_days"`
	MaxMessages int `toml:"max_messages"`
}

type NotifyConfig struct {
	RatePerSecond float64 `toml:"rate_per_second"`
	Burst         int     `toml:"burst"`
	Concurrency   int     `toml:"concurrency"`
}

type StorageConfig struct {
	RosterFile     string `toml:"roster_file"`
	TranscriptFile string `toml:"transcript_file"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Pairing PairingConfig `toml:"pairing"`
	History HistoryConfig `toml:"history"`
	Notify  NotifyConfig  `toml:"notify"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Pairing: PairingConfig{
			RoleName:        "matchy-meetups",
			MaxParticipants: pairing.DefaultMaxParticipants,
		},
		History: HistoryConfig{
			WindowDays:  365,
			MaxMessages: 1000,
		},
		Notify: NotifyConfig{
			RatePerSecond: 5,
			Burst:         5,
			Concurrency:   4,
		},
		Storage: StorageConfig{
			RosterFile:     "data/roster.toml",
			TranscriptFile: "data/history.jsonl",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error;
// the defaults (plus environment overrides) are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Missing files are
// reported as false, not as an error.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// applyEnv overrides fields from MATCHY_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}

	str("MATCHY_ADDR", &c.Server.Addr)
	str("MATCHY_ROLE_NAME", &c.Pairing.RoleName)
	str("MATCHY_ROSTER_FILE", &c.Storage.RosterFile)
	str("MATCHY_TRANSCRIPT_FILE", &c.Storage.TranscriptFile)
	str("MATCHY_LOG_LEVEL", &c.Log.Level)
	str("MATCHY_LOG_FORMAT", &c.Log.Format)

	if err := num("MATCHY_MAX_PARTICIPANTS", &c.Pairing.MaxParticipants); err != nil {
		return err
	}
	if err := num("MATCHY_HISTORY_WINDOW_DAYS", &c.History.WindowDays); err != nil {
		return err
	}
	if err := num("MATCHY_HISTORY_MAX_MESSAGES", &c.History.MaxMessages); err != nil {
		return err
	}
	if v, ok := lookup("MATCHY_STRICT_NOVELTY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: MATCHY_STRICT_NOVELTY=%q is not a boolean", ErrInvalidConfig, v)
		}
		c.Pairing.StrictNovelty = b
	}
	return nil
}

// Validate checks ranges that would otherwise fail deep inside a request.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Pairing.RoleName) == "":
		return fmt.Errorf("%w: pairing.role_name is empty", ErrInvalidConfig)
	case c.Pairing.MaxParticipants < 2 || c.Pairing.MaxParticipants > 1<<16-1:
		return fmt.Errorf("%w: pairing.max_participants=%d out of range", ErrInvalidConfig, c.Pairing.MaxParticipants)
	case c.History.WindowDays <= 0:
		return fmt.Errorf("%w: history.window_days must be positive", ErrInvalidConfig)
	case c.History.MaxMessages <= 0:
		return fmt.Errorf("%w: history.max_messages must be positive", ErrInvalidConfig)
	case c.Notify.RatePerSecond < 0 || c.Notify.Burst < 0:
		return fmt.Errorf("%w: notify rate and burst must not be negative", ErrInvalidConfig)
	case c.Notify.Concurrency <= 0:
		return fmt.Errorf("%w: notify.concurrency must be positive", ErrInvalidConfig)
	}
	return nil
}

// PairingOptions translates the pairing section into engine options.
func (c *Config) PairingOptions() []pairing.Option {
	opts := []pairing.Option{pairing.WithMaxParticipants(c.Pairing.MaxParticipants)}
	if c.Pairing.StrictNovelty {
		opts = append(opts, pairing.WithStrictNovelty())
	}
	return opts
}
