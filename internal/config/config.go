// Package config handles loading and validating the coachd configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the coachd daemon.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	Completion CompletionConfig `mapstructure:"completion"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// CompletionConfig configures the external text-completion service.
// Any OpenAI-compatible endpoint works (OpenAI, OpenRouter, Ollama).
type CompletionConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"` // empty means the OpenAI default
	Model        string        `mapstructure:"model"`
	KeywordModel string        `mapstructure:"keyword_model"` // defaults to Model
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxTokens    int           `mapstructure:"max_tokens"`

	// enabled is decided once at load time from APIKey.
	enabled bool
}

// Enabled reports whether a real credential is configured. When false every
// operation runs in local mode and no network call is attempted.
func (c CompletionConfig) Enabled() bool { return c.enabled }

// WithEnabled returns a copy of c with the capability flag set explicitly.
func (c CompletionConfig) WithEnabled(enabled bool) CompletionConfig {
	c.enabled = enabled
	return c
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// placeholderMarkers identify credentials that were left at a sample value.
var placeholderMarkers = []string{"dummy", "development", "fake", "placeholder", "your-api-key", "sk-xxx", "changeme"}

// IsPlaceholderKey reports whether key is empty or a recognizable sample value.
func IsPlaceholderKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || strings.HasPrefix(key, "${") {
		return true
	}
	for _, m := range placeholderMarkers {
		if strings.Contains(key, m) {
			return true
		}
	}
	return false
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./coachd.yaml, ./configs/coachd.yaml, /etc/coachd/coachd.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.grpc.enabled", true)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.model", "gpt-4o-mini")
	v.SetDefault("completion.keyword_model", "")
	v.SetDefault("completion.timeout", 30*time.Second)
	v.SetDefault("completion.max_tokens", 400)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("coachd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/coachd")
	}

	// Environment variables: COACHD_SERVER_HEALTH_PORT, COACHD_COMPLETION_API_KEY, etc.
	v.SetEnvPrefix("COACHD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional; env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${OPENAI_API_KEY}")
	cfg.Completion.APIKey = resolveEnvRef(cfg.Completion.APIKey)
	if cfg.Completion.APIKey == "" {
		cfg.Completion.APIKey = firstEnv("OPENAI_API_KEY", "OPENROUTER_API_KEY")
	}
	if cfg.Completion.KeywordModel == "" {
		cfg.Completion.KeywordModel = cfg.Completion.Model
	}
	cfg.Completion.enabled = !IsPlaceholderKey(cfg.Completion.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if !c.Transports.GRPC.Enabled && !c.Transports.HTTP.Enabled {
		return fmt.Errorf("config: at least one transport must be enabled")
	}
	if c.Completion.Enabled() && c.Completion.Model == "" {
		return fmt.Errorf("config: completion.model is required when an api key is set")
	}
	if c.Completion.Timeout <= 0 {
		return fmt.Errorf("config: completion.timeout must be positive, got %s", c.Completion.Timeout)
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
