package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "FUND_REPORT"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
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

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error: defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "fund-report")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 60)

	v.SetDefault("source.type", "json")
	v.SetDefault("source.path", "data/data.json")
	v.SetDefault("source.url", "")
	v.SetDefault("source.api_token", "")
	v.SetDefault("source.records_path", "$.funds")
	v.SetDefault("source.table", "fund_performance")
	v.SetDefault("source.timeout_seconds", 10)
	v.SetDefault("source.max_retries", 3)
	v.SetDefault("source.requests_per_second", 5)
	v.SetDefault("source.burst", 1)
	v.SetDefault("source.cache_ttl_seconds", 30)
	v.SetDefault("source.circuit_cooldown_seconds", 30)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("report.mode", "flat")
	v.SetDefault("report.color_policy", "gain_green")
	v.SetDefault("report.group_field", "strategy")
	v.SetDefault("report.sort_field", "")
	v.SetDefault("report.sort_direction", "descending")
	v.SetDefault("report.filename_prefix", "fund_performance")
	v.SetDefault("report.sheet_name", "Fund Performance")
	v.SetDefault("report.chart_field", "ytd")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.cron", "0 18 * * 1-5")
	v.SetDefault("scheduler.output_dir", "reports")
	v.SetDefault("scheduler.formats", []string{"pdf", "xlsx"})

	v.SetDefault("secrets.enabled", false)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
