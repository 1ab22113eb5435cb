// Package config provides configuration management for golf-edge.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "GOLF_EDGE"

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "golf-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)

	v.SetDefault("staking.bankroll", 1000.0)
	v.SetDefault("staking.kelly_fraction", 0.25)
	v.SetDefault("staking.min_edge", 0.05)
	v.SetDefault("staking.max_bet_pct", 0.05)

	v.SetDefault("analysis.risk_free_rate", 0.02)
	v.SetDefault("analysis.periods_per_year", 52.0)
	v.SetDefault("analysis.significance_level", 0.05)
	v.SetDefault("analysis.confidence", 0.95)
	v.SetDefault("analysis.bootstrap_seed", 42)
	v.SetDefault("analysis.sample_size.win_rate", 0.10)
	v.SetDefault("analysis.sample_size.avg_odds", 15.0)
	v.SetDefault("analysis.sample_size.confidence", 0.95)
	v.SetDefault("analysis.sample_size.power", 0.80)

	v.SetDefault("backtest.estimator", "combined")
	v.SetDefault("backtest.max_drawdown_alert", 0.25)

	v.SetDefault("weather.base_url", "https://archive-api.open-meteo.com/v1/archive")
	v.SetDefault("weather.timeout_seconds", 10)
	v.SetDefault("weather.retry_attempts", 3)
	v.SetDefault("weather.requests_per_second", 2.0)
	v.SetDefault("weather.cache_ttl_minutes", 60)

	v.SetDefault("ingestion.schedule", "*/15 * * * *")
	v.SetDefault("ingestion.batch_size", 500)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

// ReloadFromEnv reloads the configuration when GOLF_EDGE_CONFIG_PATH is set
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv(envPrefix + "_CONFIG_PATH"); envPath != "" {
		newCfg, err := LoadWithDefaults(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}
	return nil
}
