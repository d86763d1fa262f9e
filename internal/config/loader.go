package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DefaultCategories are the marketplace categories refreshed by the daily
// prediction job when none are configured.
var DefaultCategories = []string{
	"ELECTRONICS",
	"CLOTHING",
	"GROCERIES",
	"AGRICULTURE",
	"HANDICRAFTS",
	"PHARMACY",
	"BOOKS",
	"SPORTS",
	"HOME_DECOR",
	"JEWELRY",
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")               // Current directory
		v.AddConfigPath("./configs")       // Project configs directory
		v.AddConfigPath("/etc/demandcast") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("DEMANDCAST")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)

	// Mongo defaults
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "demandcast")
	v.SetDefault("mongo.connect_timeout", "10s")
	v.SetDefault("mongo.query_timeout", "30s")

	// Queue defaults
	v.SetDefault("queue.type", "memory")
	v.SetDefault("queue.url", "nats://localhost:4222")

	// Forecast defaults
	v.SetDefault("forecast.min_data_points", 30)
	v.SetDefault("forecast.lookback_months", 6)
	v.SetDefault("forecast.forecast_days", 30)
	v.SetDefault("forecast.alpha", 0.3)
	v.SetDefault("forecast.validity_days", 30)

	// Scheduler defaults
	v.SetDefault("scheduler.categories", DefaultCategories)
	v.SetDefault("scheduler.forecast_cron", "0 2 * * *")
	v.SetDefault("scheduler.archive_cron", "0 3 * * *")
	v.SetDefault("scheduler.scope_timeout", "1m")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 8080,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "demandcast",
			ConnectTimeout: 10 * time.Second,
			QueryTimeout:   30 * time.Second,
		},
		Queue: QueueConfig{
			Type: "memory",
			URL:  "nats://localhost:4222",
		},
		Forecast: ForecastConfig{
			MinDataPoints:  30,
			LookbackMonths: 6,
			ForecastDays:   30,
			Alpha:          0.3,
			ValidityDays:   30,
		},
		Scheduler: SchedulerConfig{
			Categories:   DefaultCategories,
			ForecastCron: "0 2 * * *",
			ArchiveCron:  "0 3 * * *",
			ScopeTimeout: time.Minute,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
