// Package config loads tool configuration from an optional config.yaml
// and ROADSIGHT_* environment variables, env winning.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the executables need.
type Config struct {
	BackendURL     string `mapstructure:"backend_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxAttempts    int    `mapstructure:"max_attempts"`
	DemoFallback   bool   `mapstructure:"demo_fallback"`
	LogLevel       string `mapstructure:"log_level"`
	DemoPort       int    `mapstructure:"demo_port"`
}

// Load reads config.yaml from path (missing file is fine) and applies
// environment overrides: ROADSIGHT_BACKEND_URL, ROADSIGHT_LOG_LEVEL etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("max_attempts", 3)
	v.SetDefault("demo_fallback", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("demo_port", 8000)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("ROADSIGHT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
