// Package config loads application configuration from a YAML file, environment
// variables, and built-in defaults, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      App      `mapstructure:"app"`
	Server   Server   `mapstructure:"server"`
	Sources  Sources  `mapstructure:"sources"`
	Fetch    Fetch    `mapstructure:"fetch"`
	Pipeline Pipeline `mapstructure:"pipeline"`
}

// App holds general application configuration.
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Server holds HTTP server configuration.
type Server struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ReadTimeout    string `mapstructure:"read_timeout"`
	WriteTimeout   string `mapstructure:"write_timeout"`
	RequestTimeout string `mapstructure:"request_timeout"`
	CORS           CORS   `mapstructure:"cors"`
}

// CORS holds cross-origin configuration for the HTTP server.
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Sources holds feed registry configuration.
type Sources struct {
	RegistryFile string `mapstructure:"registry_file"`
}

// Fetch holds feed fetching configuration.
type Fetch struct {
	Timeout     string `mapstructure:"timeout"`
	Concurrency int    `mapstructure:"concurrency"`
	UserAgent   string `mapstructure:"user_agent"`
}

// Pipeline holds digest pipeline tuning knobs.
type Pipeline struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	MaxBulletsPerCard   int     `mapstructure:"max_bullets_per_card"`
}

var globalConfig *Config

// Load loads the configuration from file, environment, and defaults. The
// result is cached globally; call Reset between loads in tests.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".newsagent")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.request_timeout", "60s")
	viper.SetDefault("server.cors.enabled", false)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	// Sources defaults
	viper.SetDefault("sources.registry_file", "sources.yaml")

	// Fetch defaults
	viper.SetDefault("fetch.timeout", "10s")
	viper.SetDefault("fetch.concurrency", 16)
	viper.SetDefault("fetch.user_agent", "newsagent/1.0")

	// Pipeline defaults
	viper.SetDefault("pipeline.similarity_threshold", 0.60)
	viper.SetDefault("pipeline.max_bullets_per_card", 3)
}

func bindEnvironmentVariables() {
	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"NEWSAGENT_DEBUG",
	})

	bindEnvKeys("app.log_level", []string{
		"NEWSAGENT_LOG_LEVEL",
		"LOG_LEVEL",
	})

	bindEnvKeys("server.port", []string{
		"PORT",
		"NEWSAGENT_PORT",
	})

	bindEnvKeys("sources.registry_file", []string{
		"NEWSAGENT_SOURCES_FILE",
		"SOURCES_FILE",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig ensures the configuration is internally consistent.
func validateConfig(config *Config) error {
	var errors []string

	durations := map[string]string{
		"server.read_timeout":    config.Server.ReadTimeout,
		"server.write_timeout":   config.Server.WriteTimeout,
		"server.request_timeout": config.Server.RequestTimeout,
		"fetch.timeout":          config.Fetch.Timeout,
	}
	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				errors = append(errors, fmt.Sprintf("invalid duration for %s: %s", key, duration))
			}
		}
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port out of range: %d", config.Server.Port))
	}

	if config.Fetch.Concurrency < 1 {
		errors = append(errors, fmt.Sprintf("fetch.concurrency must be positive: %d", config.Fetch.Concurrency))
	}

	if config.Pipeline.SimilarityThreshold <= 0 || config.Pipeline.SimilarityThreshold > 1 {
		errors = append(errors, fmt.Sprintf("pipeline.similarity_threshold must be in (0, 1]: %g", config.Pipeline.SimilarityThreshold))
	}

	if config.Pipeline.MaxBulletsPerCard < 1 {
		errors = append(errors, fmt.Sprintf("pipeline.max_bullets_per_card must be positive: %d", config.Pipeline.MaxBulletsPerCard))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// FetchTimeout returns fetch.timeout as a time.Duration.
func (c *Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// RequestTimeout returns server.request_timeout as a time.Duration.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.RequestTimeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// Convenience getters for commonly used configuration values
func GetApp() App           { return Get().App }
func GetServer() Server     { return Get().Server }
func GetSources() Sources   { return Get().Sources }
func GetFetch() Fetch       { return Get().Fetch }
func GetPipeline() Pipeline { return Get().Pipeline }
func IsDebugMode() bool     { return Get().App.Debug }

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
