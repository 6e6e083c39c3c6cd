package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Transport modes for the server.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Store     StoreConfig     `yaml:"store"`
	Export    ExportConfig    `yaml:"export"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path enables a rotated log file instead of stdout/stderr.
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type StoreConfig struct {
	Key string `yaml:"key"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "sidetrack.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Store: StoreConfig{
			Key: "dashboard_projects",
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

// Load reads configuration from an optional YAML file, an optional .env
// file, and environment variables, in that order of precedence (lowest first).
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("SIDETRACK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	envFile := os.Getenv("SIDETRACK_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envOverrides maps each environment variable onto its field.
var envOverrides = []struct {
	name  string
	apply func(cfg *Config, value string) error
}{
	{"SIDETRACK_SERVER_HOST", func(c *Config, v string) error { c.Server.Host = v; return nil }},
	{"SIDETRACK_SERVER_PORT", func(c *Config, v string) error { return setInt(&c.Server.Port, v) }},
	{"SIDETRACK_DB_PATH", func(c *Config, v string) error { c.DB.Path = v; return nil }},
	{"SIDETRACK_LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"SIDETRACK_LOG_PATH", func(c *Config, v string) error { c.Log.Path = v; return nil }},
	{"SIDETRACK_LOG_MAX_SIZE_MB", func(c *Config, v string) error { return setInt(&c.Log.MaxSizeMB, v) }},
	{"SIDETRACK_TRANSPORT", func(c *Config, v string) error { c.Transport.Mode = v; return nil }},
	{"SIDETRACK_STORE_KEY", func(c *Config, v string) error { c.Store.Key = v; return nil }},
	{"SIDETRACK_EXPORT_DIR", func(c *Config, v string) error { c.Export.Dir = v; return nil }},
}

func applyEnv(cfg *Config) error {
	for _, o := range envOverrides {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		if err := o.apply(cfg, v); err != nil {
			return fmt.Errorf("invalid %s: %w", o.name, err)
		}
	}
	cfg.Transport.Mode = strings.ToLower(strings.TrimSpace(cfg.Transport.Mode))
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if c.Transport.Mode != TransportHTTP && c.Transport.Mode != TransportStdio {
		return fmt.Errorf("invalid transport mode %q (want %s or %s)", c.Transport.Mode, TransportHTTP, TransportStdio)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return errors.New("store key must not be empty")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
