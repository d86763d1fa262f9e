package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Forecast  ForecastConfig  `mapstructure:"forecast"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// MongoConfig represents the document store connection configuration
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`             // Connection string (mongodb://...)
	Database       string        `mapstructure:"database"`        // Database name
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"` // Initial connection timeout
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`   // Per-query timeout bound
}

// QueueConfig represents the prediction event queue configuration
type QueueConfig struct {
	Type     string `mapstructure:"type"`     // Queue type: memory (default), nats, redis, kafka
	URL      string `mapstructure:"url"`      // Queue server URL (e.g., nats://localhost:4222, redis://localhost:6379)
	Username string `mapstructure:"username"` // Optional authentication
	Password string `mapstructure:"password"` // Optional authentication

	// Redis-specific options
	RedisDB     int    `mapstructure:"redis_db"`     // Redis database number (default: 0)
	RedisStream string `mapstructure:"redis_stream"` // Redis stream prefix (default: "demandcast")

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"` // Kafka broker addresses
}

// ForecastConfig holds the forecasting engine tunables. These are injected at
// service construction; nothing reads them from the environment at call time.
type ForecastConfig struct {
	MinDataPoints  int     `mapstructure:"min_data_points"` // Records required before a forecast is attempted
	LookbackMonths int     `mapstructure:"lookback_months"` // Trailing history window in months
	ForecastDays   int     `mapstructure:"forecast_days"`   // Default projection horizon in days
	Alpha          float64 `mapstructure:"alpha"`           // Exponential smoothing factor (0-1)
	ValidityDays   int     `mapstructure:"validity_days"`   // How long persisted predictions stay valid
}

// SchedulerConfig represents the recurring jobs configuration
type SchedulerConfig struct {
	Categories   []string      `mapstructure:"categories"`    // Categories refreshed by the daily forecast job
	ForecastCron string        `mapstructure:"forecast_cron"` // Daily prediction generation schedule
	ArchiveCron  string        `mapstructure:"archive_cron"`  // Daily archival sweep schedule
	ScopeTimeout time.Duration `mapstructure:"scope_timeout"` // Per-category operation bound
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Mongo.Validate(); err != nil {
		return fmt.Errorf("mongo config: %w", err)
	}

	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast config: %w", err)
	}

	if err := c.Scheduler.Validate(); err != nil {
		return fmt.Errorf("scheduler config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}
	return nil
}

// Validate validates the document store configuration
func (c *MongoConfig) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}

	if c.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}

	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("mongo.connect_timeout must be positive")
	}

	if c.QueryTimeout <= 0 {
		return fmt.Errorf("mongo.query_timeout must be positive")
	}

	return nil
}

// Validate validates the forecast engine configuration
func (c *ForecastConfig) Validate() error {
	if c.MinDataPoints < 2 {
		return fmt.Errorf("forecast.min_data_points must be at least 2")
	}

	if c.LookbackMonths < 1 {
		return fmt.Errorf("forecast.lookback_months must be at least 1")
	}

	if c.ForecastDays < 1 {
		return fmt.Errorf("forecast.forecast_days must be at least 1")
	}

	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("forecast.alpha must be in (0, 1]")
	}

	if c.ValidityDays < 1 {
		return fmt.Errorf("forecast.validity_days must be at least 1")
	}

	return nil
}

// Validate validates scheduler configuration
func (c *SchedulerConfig) Validate() error {
	if c.ForecastCron == "" {
		return fmt.Errorf("scheduler.forecast_cron is required")
	}

	if c.ArchiveCron == "" {
		return fmt.Errorf("scheduler.archive_cron is required")
	}

	if c.ScopeTimeout <= 0 {
		return fmt.Errorf("scheduler.scope_timeout must be positive")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
