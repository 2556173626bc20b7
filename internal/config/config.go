// Package config loads inman settings from the environment.
//
// Variables use the INMAN_ prefix and a double underscore for nesting,
// e.g. INMAN_DATABASE__HOST maps to database.host. A .env file in the
// working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "INMAN_"

// Config is the root configuration.
type Config struct {
	Database    DatabaseConfig    `koanf:"database" validate:"required"`
	Log         LogConfig         `koanf:"log"`
	HTTP        HTTPConfig        `koanf:"http"`
	Maintenance MaintenanceConfig `koanf:"maintenance"`

	settings *koanf.Koanf
}

// DatabaseConfig holds connection parameters and pool tuning.
// When DSN is set it is passed to the driver unchanged and the host/user
// fields are ignored.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"required,oneof=mysql postgres"`
	DSN             string        `koanf:"dsn"`
	Host            string        `koanf:"host" validate:"required_without=DSN"`
	Port            int           `koanf:"port" validate:"gte=0,lte=65535"`
	User            string        `koanf:"user" validate:"required_without=DSN"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required_without=DSN"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// LogConfig holds the console level and the log file location.
// Rotation settings are read through Loader under the log.* keys.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`
	File  string `koanf:"file"`
}

// HTTPConfig configures the JSON API served by "inman serve".
type HTTPConfig struct {
	Bind         string        `koanf:"bind" validate:"omitempty,ip"`
	Port         int           `koanf:"port" validate:"gte=1,lte=65535"`
	AllowSubnet  string        `koanf:"allow_subnet" validate:"omitempty,cidr"`
	Username     string        `koanf:"username"`
	PasswordHash string        `koanf:"password_hash" validate:"required_with=Username"`
	Timeout      time.Duration `koanf:"timeout"`
}

// MaintenanceConfig configures the statistics refresh job.
// An empty schedule disables it.
type MaintenanceConfig struct {
	Schedule string `koanf:"schedule"`
}

// Default returns the configuration used before the environment is applied.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          "mysql",
			Host:            "localhost",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
			File:  "inman.log",
		},
		HTTP: HTTPConfig{
			Bind:    "127.0.0.1",
			Port:    8080,
			Timeout: 60 * time.Second,
		},
	}
}

// Load reads envFile (or ./.env when envFile is empty and the file exists),
// maps INMAN_* variables onto Default() and validates the result.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.settings = k

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Loader gives typed access to raw settings that have no struct field.
func (c *Config) Loader() *Loader {
	if c.settings == nil {
		return NewLoader(koanfSettings{k: koanf.New(".")})
	}
	return NewLoader(koanfSettings{k: c.settings})
}

type koanfSettings struct {
	k *koanf.Koanf
}

func (s koanfSettings) GetSetting(key string) (string, error) {
	return s.k.String(key), nil
}
