package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LIBRARIUM"

// ServiceName identifies the API in log entries.
const ServiceName = "librarium-api"

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Validation ValidationConfig `mapstructure:"validation"`
	CORS       CORSConfig       `mapstructure:"cors"`
	AutoLoad   AutoLoadConfig   `mapstructure:"autoload"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string          `mapstructure:"port"`
	Env             string          `mapstructure:"env"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds per client rate limiting configuration
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ValidationConfig holds request validation configuration
type ValidationConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Contract is a file path or http(s) URL. Empty means the embedded contract.
	Contract  string   `mapstructure:"contract"`
	Whitelist []string `mapstructure:"whitelist"`

	// Levels overrides the level of message keys.
	Levels []LevelOverride `mapstructure:"levels"`
}

// LevelOverride assigns a level to a validation message key. Keys contain
// dots, so overrides are a list rather than a map.
type LevelOverride struct {
	Key   string `mapstructure:"key"`
	Level string `mapstructure:"level"`
}

// CORSConfig holds cross-origin configuration
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AutoLoadConfig names fixture files loaded at startup
type AutoLoadConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Authors string `mapstructure:"authors"`
	Books   string `mapstructure:"books"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LoggerConfig converts the log section to a logger configuration.
func (c *Config) LoggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.ParseLevel(c.Log.Level)
	cfg.Format = c.Log.Format
	cfg.Service = ServiceName
	cfg.Env = c.Server.Env
	return cfg
}

// ValidationLevels converts the configured level overrides.
func (c *Config) ValidationLevels() (map[string]schema.Level, error) {
	levels := make(map[string]schema.Level, len(c.Validation.Levels))
	for i, o := range c.Validation.Levels {
		if o.Key == "" {
			return nil, fmt.Errorf("validation.levels[%d]: key is required", i)
		}
		level, err := schema.ParseLevel(o.Level)
		if err != nil {
			return nil, fmt.Errorf("validation.levels[%d]: %w", i, err)
		}
		levels[o.Key] = level
	}
	return levels, nil
}

// Load reads configuration from environment variables, an optional .env
// file and an optional config file
func Load() (*Config, error) {
	// A missing .env file is fine; variables already set win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for backward compatibility
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit.enabled", false)
	v.SetDefault("server.rate_limit.requests", 100)
	v.SetDefault("server.rate_limit.window", time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("validation.enabled", true)
	v.SetDefault("validation.contract", "")
	v.SetDefault("validation.whitelist", schema.DefaultWhitelist)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("autoload.enabled", false)
	v.SetDefault("autoload.authors", "")
	v.SetDefault("autoload.books", "")
}

// Validate checks that the configuration values are consistent
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	switch c.Server.Env {
	case "development", "test", "production":
	default:
		errs = append(errs, fmt.Errorf("server.env must be development, test or production, got %q", c.Server.Env))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.Requests <= 0 || c.Server.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("server.rate_limit requires positive requests and window"))
	}

	if !logger.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not a valid level", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}

	if _, err := c.ValidationLevels(); err != nil {
		errs = append(errs, err)
	}

	if c.AutoLoad.Enabled && c.AutoLoad.Authors == "" && c.AutoLoad.Books == "" {
		errs = append(errs, errors.New("autoload is enabled but no fixture file is configured"))
	}

	return errors.Join(errs...)
}
