// Package config loads unprecompose settings from a TOML file and the
// environment.
//
// Settings are resolved in increasing order of precedence:
//
//  1. Built-in defaults
//  2. The config file ($XDG_CONFIG_HOME/unprecompose/config.toml, or the
//     path given by --config or UNPRECOMPOSE_CONFIG)
//  3. Environment variables prefixed with UNPRECOMPOSE_, with dots replaced
//     by underscores (UNPRECOMPOSE_HISTORY_BACKEND=redis)
//
// Command-line flags are applied on top by the CLI.
//
// Example config file:
//
//	[flatten]
//	placement = "in-place"
//	trim = true
//
//	[history]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "72h"
//
//	[log]
//	level = "debug"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/flatten"
	"github.com/matzehuels/unprecompose/pkg/history"
)

// AppName is used for config and cache directories.
const AppName = "unprecompose"

// Snapshot storage backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds application configuration.
type Config struct {
	Flatten FlattenConfig `mapstructure:"flatten"`
	History HistoryConfig `mapstructure:"history"`
	Log     LogConfig     `mapstructure:"log"`
}

// FlattenConfig holds defaults for the flatten command.
type FlattenConfig struct {
	Placement          string `mapstructure:"placement"`
	Trim               bool   `mapstructure:"trim"`
	DropInnerParenting bool   `mapstructure:"drop_inner_parenting"`
}

// HistoryConfig selects and configures the undo snapshot store.
type HistoryConfig struct {
	Backend       string        `mapstructure:"backend"`
	Dir           string        `mapstructure:"dir"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. An explicit path must exist;
// the default config file is optional.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("flatten.placement", string(flatten.PlaceTop))
	v.SetDefault("flatten.trim", false)
	v.SetDefault("flatten.drop_inner_parenting", false)
	v.SetDefault("history.backend", BackendFile)
	v.SetDefault("history.dir", "")
	v.SetDefault("history.redis_addr", "localhost:6379")
	v.SetDefault("history.redis_password", "")
	v.SetDefault("history.redis_db", 0)
	v.SetDefault("history.ttl", history.DefaultTTL)
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("UNPRECOMPOSE_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		dir, err := ConfigDir()
		if err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}

	v.SetEnvPrefix("UNPRECOMPOSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			_, statErr := os.Stat(path)
			switch {
			case os.IsNotExist(statErr) && explicit:
				return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
			case !os.IsNotExist(statErr):
				return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read config %s", path)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal config")
	}
	if c.History.Dir == "" {
		if dir, err := CacheDir(); err == nil {
			c.History.Dir = filepath.Join(dir, "history")
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, err := flatten.ParsePlacement(c.Flatten.Placement); err != nil {
		return err
	}
	switch c.History.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid history backend: %q (must be one of: file, redis, none)", c.History.Backend)
	}
	if c.History.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "history ttl must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid log level %q", c.Log.Level)
	}
	return nil
}

// ConfigDir returns the config directory using XDG standard (~/.config/unprecompose/).
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/unprecompose/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
