// Package config loads the portman TOML configuration, writing the defaults on
// first run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigPath  = "~/.config/portman/config.toml"
	DefaultDBPath      = "~/.config/portman/portman.db"
	DefaultBaseURL     = "http://localhost:5000"
	DefaultPageSize    = 1000
	DefaultTimeout     = 30
	DefaultPageDelayMS = 300
	DefaultDays        = 7
)

type API struct {
	BaseURL        string `toml:"base_url"`
	FunctionKey    string `toml:"function_key"`
	AuthToken      string `toml:"auth_token"`
	PageSize       int    `toml:"page_size"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	PageDelayMS    int    `toml:"page_delay_ms"`
}

type Filter struct {
	DefaultDays int `toml:"default_days"`
}

type Storage struct {
	DBPath  string `toml:"db_path"`
	LogFile string `toml:"log_file"`
}

type Config struct {
	API     API     `toml:"api"`
	Filter  Filter  `toml:"filter"`
	Storage Storage `toml:"storage"`
}

// Timeout returns the per-request timeout
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// PageDelay returns the pause between consecutive page requests
func (c Config) PageDelay() time.Duration {
	return time.Duration(c.API.PageDelayMS) * time.Millisecond
}

// LoadOrCreate reads the config at path. A missing file is created with the
// defaults. Unset fields fall back to their defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()

	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.expand()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg.expand()
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		API: API{
			BaseURL:        DefaultBaseURL,
			PageSize:       DefaultPageSize,
			TimeoutSeconds: DefaultTimeout,
			PageDelayMS:    DefaultPageDelayMS,
		},
		Filter: Filter{
			DefaultDays: DefaultDays,
		},
		Storage: Storage{
			DBPath: DefaultDBPath,
		},
	}
}

func (c *Config) fillDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.PageSize <= 0 {
		c.API.PageSize = DefaultPageSize
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = DefaultTimeout
	}
	// 0 is a valid delay
	if c.API.PageDelayMS < 0 {
		c.API.PageDelayMS = DefaultPageDelayMS
	}
	if c.Filter.DefaultDays <= 0 {
		c.Filter.DefaultDays = DefaultDays
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = DefaultDBPath
	}
}

func (c Config) expand() (Config, error) {
	db, err := homedir.Expand(c.Storage.DBPath)
	if err != nil {
		return c, fmt.Errorf("expanding db_path: %w", err)
	}
	c.Storage.DBPath = db

	if c.Storage.LogFile != "" {
		logFile, err := homedir.Expand(c.Storage.LogFile)
		if err != nil {
			return c, fmt.Errorf("expanding log_file: %w", err)
		}
		c.Storage.LogFile = logFile
	}
	return c, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
