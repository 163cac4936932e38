// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	Store      StoreConfig      `mapstructure:"store" yaml:"store"`
	Dataset    DatasetConfig    `mapstructure:"dataset" yaml:"dataset"`
	Reasoning  ReasoningConfig  `mapstructure:"reasoning" yaml:"reasoning"`
	Insight    InsightConfig    `mapstructure:"insight" yaml:"insight"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// StoreConfig locates the durable collection store and sets append policy.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
	// AllowDuplicateDates keeps the historical behavior of permitting more
	// than one log per calendar day. Set false to enforce one-per-day.
	AllowDuplicateDates bool `mapstructure:"allow_duplicate_dates" yaml:"allow_duplicate_dates"`
}

// DatasetConfig shapes the synthetic seed dataset.
type DatasetConfig struct {
	Days int `mapstructure:"days" yaml:"days"`
}

// ReasoningConfig holds the credentials and tuning for the external causal
// reasoning service.
type ReasoningConfig struct {
	APIKey   string `mapstructure:"api_key" yaml:"-"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	// FastModel serves chat and extraction; PowerfulModel serves batch driver
	// analysis, mirroring the workload split of the reasoning service.
	FastModel     string        `mapstructure:"fast_model" yaml:"fast_model"`
	PowerfulModel string        `mapstructure:"powerful_model" yaml:"powerful_model"`
	APITimeout    time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
	Temperature   float64       `mapstructure:"temperature" yaml:"temperature"`
	// RequestsPerMinute paces outgoing calls; 0 disables pacing.
	RequestsPerMinute float64 `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// InsightConfig bounds the batch driver-analysis request.
type InsightConfig struct {
	WindowSize int `mapstructure:"window_size" yaml:"window_size"`
}

// SimulationConfig bounds the counterfactual chat session context.
type SimulationConfig struct {
	ContextWindow int `mapstructure:"context_window" yaml:"context_window"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "habitcoach")
	v.SetDefault("logger.log_file", "habitcoach.log")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Store --
	v.SetDefault("store.path", "habitcoach.db")
	v.SetDefault("store.allow_duplicate_dates", true)

	// -- Dataset --
	v.SetDefault("dataset.days", 30)

	// -- Reasoning --
	v.SetDefault("reasoning.fast_model", "gemini-2.5-flash")
	v.SetDefault("reasoning.powerful_model", "gemini-2.5-pro")
	v.SetDefault("reasoning.api_timeout", "90s")
	v.SetDefault("reasoning.temperature", 0.4)
	v.SetDefault("reasoning.requests_per_minute", 12.0)

	// -- Request windows --
	v.SetDefault("insight.window_size", 14)
	v.SetDefault("simulation.context_window", 7)
}

// NewConfigFromViper creates a validated configuration instance from a viper
// object that has already read its sources.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	// Credentials come from the environment, never the config file.
	v.BindEnv("reasoning.api_key", "GEMINI_API_KEY", "HABITCOACH_REASONING_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values. API-key presence is
// checked separately at the point a reasoning client is constructed, so
// purely local commands work without credentials.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if c.Dataset.Days <= 0 {
		return fmt.Errorf("dataset.days must be a positive integer")
	}
	if c.Insight.WindowSize <= 0 {
		return fmt.Errorf("insight.window_size must be a positive integer")
	}
	if c.Simulation.ContextWindow <= 0 {
		return fmt.Errorf("simulation.context_window must be a positive integer")
	}
	if c.Reasoning.RequestsPerMinute < 0 {
		return fmt.Errorf("reasoning.requests_per_minute must not be negative")
	}
	return nil
}
