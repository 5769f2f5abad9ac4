// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. A command-line flag:      --config=/path/to/config.yaml
//  2. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  3. The environment alone, when no file is given (DB_DRIVER, DB_NAME, ...)
//
// Values in a file can always be overridden by the matching environment
// variable (env:"..." tags). Connection parameters have no defaults: the
// program refuses to start rather than silently talk to the wrong database.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true" validate:"oneof=dev staging prod"`

	Database Database `yaml:"database"`
	Log      Log      `yaml:"log"`
	Console  Console  `yaml:"console"`
}

// Database holds the opaque connection parameters handed to the storage
// layer. For the sqlite drivers Name is the database file path and
// Host/Port are ignored.
type Database struct {
	Driver   string `yaml:"driver"   env:"DB_DRIVER" env-required:"true" validate:"oneof=sqlite3 sqlite mysql postgres"`
	Host     string `yaml:"host"     env:"DB_HOST"`
	Port     int    `yaml:"port"     env:"DB_PORT" validate:"min=0,max=65535"`
	Name     string `yaml:"name"     env:"DB_NAME" env-required:"true"`
	User     string `yaml:"user"     env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
}

// Log configures the rotating log file. An empty Path sends logs to stderr.
type Log struct {
	Path       string `yaml:"path"         env:"LOG_PATH"`
	MaxSizeMB  int    `yaml:"max_size_mb"  env:"LOG_MAX_SIZE_MB" env-default:"10" validate:"min=0"`
	MaxBackups int    `yaml:"max_backups"  env:"LOG_MAX_BACKUPS" env-default:"3" validate:"min=0"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" env-default:"28" validate:"min=0"`
	Compress   bool   `yaml:"compress"     env:"LOG_COMPRESS"`
}

// Console holds settings for the interactive menu.
type Console struct {
	// ClearScreen clears the terminal after each action's pause prompt.
	ClearScreen bool `yaml:"clear_screen" env:"CLEAR_SCREEN"`
}

// ErrConfigNotFound is returned when an explicit config path does not exist.
var ErrConfigNotFound = errors.New("config file does not exist")

// ResolvePath picks the config file path: the flag value when set,
// otherwise CONFIG_PATH. An empty result means "environment only".
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONFIG_PATH")
}

// Load reads and validates the configuration. With an empty path only
// environment variables are consulted.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read config from env: %w", err)
		}
	} else {
		// Give a clear message rather than a cryptic "open: no such file" later.
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad is Load for program start-up: it exits the process when the
// configuration cannot be read. If this returns, the config is valid.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}
	return cfg
}
