// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	Search   SearchConfig   `mapstructure:"search"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AIConfig contains model-provider configuration
type AIConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Model               string        `mapstructure:"model"`
	MaxTokens           int           `mapstructure:"max_tokens" validate:"min=1"`
	PreciseTemperature  float64       `mapstructure:"precise_temperature" validate:"min=0,max=2"`
	CreativeTemperature float64       `mapstructure:"creative_temperature" validate:"min=0,max=2"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRetries          int           `mapstructure:"max_retries" validate:"min=0"`
}

// SearchConfig contains web-search provider configuration. An empty APIKey
// disables the research stage entirely; that is not an error.
type SearchConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	MaxQueries int           `mapstructure:"max_queries"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// Enabled reports whether the search capability is configured.
func (s SearchConfig) Enabled() bool {
	return s.APIKey != ""
}

// WorkflowConfig contains orchestration tuning knobs
type WorkflowConfig struct {
	// RunTimeout bounds a whole run. Individual model calls carry their own
	// timeout; this is the overall deadline.
	RunTimeout time.Duration `mapstructure:"run_timeout"`
	// MinInstructionSteps and MinAvgStepLength are the truncation heuristics
	// for the completeness audit.
	MinInstructionSteps int `mapstructure:"min_instruction_steps" validate:"min=1"`
	MinAvgStepLength    int `mapstructure:"min_avg_step_length" validate:"min=1"`
	// MaxCookingTips caps the merged tip list after enhancement.
	MaxCookingTips int `mapstructure:"max_cooking_tips" validate:"min=1"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/mealforge")
	}

	v.SetEnvPrefix("MEALFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Mealforge")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "5m")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// AI defaults
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gpt-4")
	v.SetDefault("ai.max_tokens", 4000)
	v.SetDefault("ai.precise_temperature", 0.1)
	v.SetDefault("ai.creative_temperature", 0.7)
	v.SetDefault("ai.timeout", "120s")
	v.SetDefault("ai.max_retries", 3)

	// Search defaults
	v.SetDefault("search.base_url", "https://api.tavily.com")
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.max_queries", 2)
	v.SetDefault("search.max_results", 2)
	v.SetDefault("search.timeout", "30s")
	v.SetDefault("search.cache_ttl", "1h")

	// Workflow defaults
	v.SetDefault("workflow.run_timeout", "5m")
	v.SetDefault("workflow.min_instruction_steps", 3)
	v.SetDefault("workflow.min_avg_step_length", 30)
	v.SetDefault("workflow.max_cooking_tips", 8)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration value: %w", err)
	}

	if c.AI.APIKey == "" && c.App.Environment == "production" {
		return fmt.Errorf("ai.api_key is required in production")
	}

	return nil
}
