package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting for the arena server. Values are
// layered: built-in defaults, then the optional JSON config file, then
// environment variables.
type Config struct {
	ListenAddress string `env:"ARENA_LISTEN_ADDRESS"`
	DatabasePath  string `env:"ARENA_DB_PATH"`

	// StakeAmount is the exact amount each player must stake to take a
	// seat. Joins with any other amount are rejected.
	StakeAmount uint64 `env:"ARENA_STAKE_AMOUNT"`

	// ActionTimeout is how long the match waits for the next required
	// action before it becomes claimable by timeout.
	ActionTimeout time.Duration `env:"ARENA_ACTION_TIMEOUT"`

	// SweepInterval is how often the background sweeper settles expired
	// matches on behalf of absent players.
	SweepInterval time.Duration `env:"ARENA_SWEEP_INTERVAL"`

	LogLevel string `env:"ARENA_LOG_LEVEL"`
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	Arena *struct {
		StakeAmount   uint64 `json:"stake_amount"`
		ActionTimeout string `json:"action_timeout"`
		SweepInterval string `json:"sweep_interval"`
	} `json:"arena"`
	LogLevel string `json:"log_level"`
}

func defaults() Config {
	return Config{
		ListenAddress: ":8080",
		DatabasePath:  "arena.db",
		StakeAmount:   10_000_000,
		ActionTimeout: 15 * time.Minute,
		SweepInterval: 30 * time.Second,
		LogLevel:      "info",
	}
}

// Load builds the configuration. The file at path is optional; an empty
// path or a missing file falls back to defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ListenAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if rc.Arena != nil {
		if rc.Arena.StakeAmount != 0 {
			cfg.StakeAmount = rc.Arena.StakeAmount
		}
		if rc.Arena.ActionTimeout != "" {
			d, err := time.ParseDuration(rc.Arena.ActionTimeout)
			if err != nil {
				return fmt.Errorf("config file %s: bad action_timeout: %w", path, err)
			}
			cfg.ActionTimeout = d
		}
		if rc.Arena.SweepInterval != "" {
			d, err := time.ParseDuration(rc.Arena.SweepInterval)
			if err != nil {
				return fmt.Errorf("config file %s: bad sweep_interval: %w", path, err)
			}
			cfg.SweepInterval = d
		}
	}
	if rc.LogLevel != "" {
		cfg.LogLevel = rc.LogLevel
	}
	return nil
}

func (c *Config) validate() error {
	if c.StakeAmount == 0 {
		return fmt.Errorf("stake amount must be positive")
	}
	if c.ActionTimeout <= 0 {
		return fmt.Errorf("action timeout must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive")
	}
	return nil
}
