package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// Session configuration
	Session SessionConfig `yaml:"session"`

	// Public feed configuration
	Feed FeedConfig `yaml:"feed"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Name         string        `yaml:"name"`
	SSLMode      string        `yaml:"sslmode"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxLifetime  time.Duration `yaml:"max_lifetime"`
}

// SessionConfig holds server-side session settings
type SessionConfig struct {
	Lifetime     time.Duration `yaml:"lifetime"`
	CookieName   string        `yaml:"cookie_name"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// FeedConfig holds the public RSS feed settings
type FeedConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "pretty"
}

// Load builds the configuration. An optional YAML file (CONFIG_FILE) supplies
// base values; environment variables override it; defaults fill the rest.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "postgres",
			Name:         "editorial_backoffice",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
			MaxLifetime:  5 * time.Minute,
		},
		Session: SessionConfig{
			Lifetime:   12 * time.Hour,
			CookieName: "session",
		},
		Feed: FeedConfig{
			Title:       "Les articles",
			Description: "Les derniers articles en ligne",
			Link:        "http://localhost:8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setEnv(&c.Server.Port, "PORT")
	setDurationEnv(&c.Server.ReadTimeout, "SERVER_READ_TIMEOUT")
	setDurationEnv(&c.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT")
	setDurationEnv(&c.Server.ShutdownTimeout, "SERVER_SHUTDOWN_TIMEOUT")

	setEnv(&c.Database.Host, "DB_HOST")
	setEnv(&c.Database.Port, "DB_PORT")
	setEnv(&c.Database.User, "DB_USER")
	setEnv(&c.Database.Password, "DB_PASSWORD")
	setEnv(&c.Database.Name, "DB_NAME")
	setEnv(&c.Database.SSLMode, "DB_SSLMODE")
	setIntEnv(&c.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS")
	setIntEnv(&c.Database.MaxIdleConns, "DB_MAX_IDLE_CONNS")
	setDurationEnv(&c.Database.MaxLifetime, "DB_MAX_LIFETIME")

	setDurationEnv(&c.Session.Lifetime, "SESSION_LIFETIME")
	setEnv(&c.Session.CookieName, "SESSION_COOKIE_NAME")
	setBoolEnv(&c.Session.CookieSecure, "SESSION_COOKIE_SECURE")

	setEnv(&c.Feed.Title, "FEED_TITLE")
	setEnv(&c.Feed.Description, "FEED_DESCRIPTION")
	setEnv(&c.Feed.Link, "FEED_LINK")

	setEnv(&c.Log.Level, "LOG_LEVEL")
	setEnv(&c.Log.Format, "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable overrides

func setEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setIntEnv(dst *int, key string) {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			*dst = intVal
		}
	}
}

func setBoolEnv(dst *bool, key string) {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			*dst = boolVal
		}
	}
}

func setDurationEnv(dst *time.Duration, key string) {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			*dst = duration
		}
	}
}
