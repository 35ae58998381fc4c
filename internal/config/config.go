// Package config loads strand's runtime configuration.
//
// Sources, lowest precedence first: built-in defaults, an optional YAML
// config file, environment variables, then command-line flags.
//
// Environment variables:
//   - PORT: HTTP listen port (default 8080)
//   - STRAND_DB: SQLite database path (default ./data.db)
//   - STRAND_LOG_LEVEL: debug|info|warn|error (default info)
//   - STRAND_LOG_FORMAT: text|json (default text)
//   - STRAND_SHUTDOWN_TIMEOUT: graceful shutdown window (default 10s)
package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the complete strand configuration.
type Config struct {
	Port            int           `mapstructure:"port" yaml:"port"`
	Database        string        `mapstructure:"database" yaml:"database"`
	Log             LogConfig     `mapstructure:"log" yaml:"log"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ValidLogLevels and ValidLogFormats enumerate accepted LogConfig values.
var (
	ValidLogLevels  = []string{"debug", "info", "warn", "error"}
	ValidLogFormats = []string{"text", "json"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:     8080,
		Database: "./data.db",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		ShutdownTimeout: 10 * time.Second,
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":       "port",
	"db":         "database",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// envKeys maps configuration keys to the environment variables read for them.
var envKeys = map[string]string{
	"port":             "PORT",
	"database":         "STRAND_DB",
	"log.level":        "STRAND_LOG_LEVEL",
	"log.format":       "STRAND_LOG_FORMAT",
	"shutdown_timeout": "STRAND_SHUTDOWN_TIMEOUT",
}

// Load builds a Config from defaults, configFile (optional), the
// environment and flags. Only flags the user actually set override other
// sources. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("port", def.Port)
	v.SetDefault("database", def.Database)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("shutdown_timeout", def.ShutdownTimeout)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &Error{Field: "port", Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Port)}
	}
	if c.Database == "" {
		return &Error{Field: "database", Message: "must not be empty"}
	}
	if !slices.Contains(ValidLogLevels, c.Log.Level) {
		return &Error{Field: "log.level", Message: fmt.Sprintf("must be one of %v, got %q", ValidLogLevels, c.Log.Level)}
	}
	if !slices.Contains(ValidLogFormats, c.Log.Format) {
		return &Error{Field: "log.format", Message: fmt.Sprintf("must be one of %v, got %q", ValidLogFormats, c.Log.Format)}
	}
	if c.ShutdownTimeout <= 0 {
		return &Error{Field: "shutdown_timeout", Message: "must be positive"}
	}
	return nil
}

// Addr returns the listen address for Port on all interfaces.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// SlogLevel converts Log.Level to a slog.Level. Unknown levels map to Info.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Error reports an invalid configuration field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
