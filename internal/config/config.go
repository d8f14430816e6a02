// Package config loads server and planner settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	FrontendURL     string
	EnableHSTS      bool
	RateLimit       string
	ServerDebugMode bool

	StorageBackend string
	SQLitePath     string
	DatabaseURL    string
	RedisURL       string

	Timezone      string
	Location      *time.Location
	LevelUpNotice time.Duration

	BackupInterval  time.Duration
	BackupRetention int

	OTELEnabled  bool
	OTELEndpoint string
}

// fileConfig mirrors the optional YAML config file. Zero values mean "not set".
type fileConfig struct {
	Server struct {
		Port        string `yaml:"port"`
		FrontendURL string `yaml:"frontend_url"`
		EnableHSTS  *bool  `yaml:"enable_hsts"`
		RateLimit   string `yaml:"rate_limit"`
		DebugMode   *bool  `yaml:"debug_mode"`
	} `yaml:"server"`
	Storage struct {
		Backend     string `yaml:"backend"`
		SQLitePath  string `yaml:"sqlite_path"`
		DatabaseURL string `yaml:"database_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"storage"`
	Planner struct {
		Timezone             string `yaml:"timezone"`
		LevelUpNoticeSeconds int    `yaml:"level_up_notice_seconds"`
	} `yaml:"planner"`
	Backup struct {
		Interval  string `yaml:"interval"`
		Retention int    `yaml:"retention"`
	} `yaml:"backup"`
	Telemetry struct {
		Enabled  *bool  `yaml:"enabled"`
		Endpoint string `yaml:"endpoint"`
	} `yaml:"telemetry"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		ServerPort:      "8080",
		FrontendURL:     "http://localhost:3000",
		RateLimit:       "300-M",
		StorageBackend:  "sqlite",
		SQLitePath:      "data/planner.db",
		Timezone:        "Local",
		Location:        time.Local,
		LevelUpNotice:   3 * time.Second,
		BackupInterval:  time.Hour,
		BackupRetention: 10,
	}
}

// Load reads .env (if present), then the YAML file named by PLANNER_CONFIG,
// then environment variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return load(os.Getenv)
}

func load(lookup func(string) string) (*Config, error) {
	cfg := Defaults()

	if path := lookup("PLANNER_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	env := source{lookup: lookup}
	cfg.ServerPort = env.getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.FrontendURL = env.getEnv("FRONTEND_URL", cfg.FrontendURL)
	cfg.EnableHSTS = env.getEnvBool("ENABLE_HSTS", cfg.EnableHSTS)
	cfg.RateLimit = env.getEnv("RATE_LIMIT", cfg.RateLimit)
	cfg.ServerDebugMode = env.getEnvBool("SERVER_DEBUG_MODE", cfg.ServerDebugMode)
	cfg.StorageBackend = strings.ToLower(env.getEnv("STORAGE_BACKEND", cfg.StorageBackend))
	cfg.SQLitePath = env.getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.DatabaseURL = env.getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = env.getEnv("REDIS_URL", cfg.RedisURL)
	cfg.Timezone = env.getEnv("PLANNER_TIMEZONE", cfg.Timezone)
	cfg.LevelUpNotice = time.Duration(env.getEnvInt("LEVEL_UP_NOTICE_SECONDS", int(cfg.LevelUpNotice/time.Second))) * time.Second
	cfg.BackupInterval = env.getEnvDuration("BACKUP_INTERVAL", cfg.BackupInterval)
	cfg.BackupRetention = env.getEnvInt("BACKUP_RETENTION", cfg.BackupRetention)
	cfg.OTELEnabled = env.getEnvBool("OTEL_ENABLED", cfg.OTELEnabled)
	cfg.OTELEndpoint = env.getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTELEndpoint)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&c.ServerPort, f.Server.Port)
	setString(&c.FrontendURL, f.Server.FrontendURL)
	setString(&c.RateLimit, f.Server.RateLimit)
	setBool(&c.EnableHSTS, f.Server.EnableHSTS)
	setBool(&c.ServerDebugMode, f.Server.DebugMode)
	setString(&c.StorageBackend, f.Storage.Backend)
	setString(&c.SQLitePath, f.Storage.SQLitePath)
	setString(&c.DatabaseURL, f.Storage.DatabaseURL)
	setString(&c.RedisURL, f.Storage.RedisURL)
	setString(&c.Timezone, f.Planner.Timezone)
	if f.Planner.LevelUpNoticeSeconds > 0 {
		c.LevelUpNotice = time.Duration(f.Planner.LevelUpNoticeSeconds) * time.Second
	}
	if f.Backup.Interval != "" {
		d, err := time.ParseDuration(f.Backup.Interval)
		if err != nil {
			return fmt.Errorf("invalid backup.interval %q: %w", f.Backup.Interval, err)
		}
		c.BackupInterval = d
	}
	if f.Backup.Retention != 0 {
		c.BackupRetention = f.Backup.Retention
	}
	setBool(&c.OTELEnabled, f.Telemetry.Enabled)
	setString(&c.OTELEndpoint, f.Telemetry.Endpoint)
	return nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (must be memory, sqlite, postgres or redis)", c.StorageBackend)
	}

	loc, err := loadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid PLANNER_TIMEZONE %q: %w", c.Timezone, err)
	}
	c.Location = loc

	if c.BackupInterval <= 0 {
		return fmt.Errorf("BACKUP_INTERVAL must be positive")
	}
	if c.BackupRetention < 1 {
		return fmt.Errorf("BACKUP_RETENTION must be at least 1")
	}
	if c.LevelUpNotice < 0 {
		c.LevelUpNotice = 0
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

type source struct {
	lookup func(string) string
}

func (s source) getEnv(key, defaultValue string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	return defaultValue
}

func (s source) getEnvBool(key string, defaultValue bool) bool {
	if value := s.lookup(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func (s source) getEnvInt(key string, defaultValue int) int {
	if value := s.lookup(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (s source) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := s.lookup(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
