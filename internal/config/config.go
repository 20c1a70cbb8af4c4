// Package config provides configuration management for the fund report service.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Source    SourceConfig    `mapstructure:"source" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Report    ReportConfig    `mapstructure:"report" validate:"required"`
	Rendering RenderingConfig `mapstructure:"rendering"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host                string `mapstructure:"host"`
	Port                int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
}

// SourceConfig selects and configures where fund records come from
type SourceConfig struct {
	Type              string  `mapstructure:"type" validate:"required,sourcetype"`
	Path              string  `mapstructure:"path"`
	URL               string  `mapstructure:"url" validate:"omitempty,url"`
	APIToken          string  `mapstructure:"api_token"`
	RecordsPath       string  `mapstructure:"records_path" validate:"required"`
	Table             string  `mapstructure:"table"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	Burst             int     `mapstructure:"burst" validate:"required,gt=0"`
	CacheTTLSeconds   int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	// CircuitCooldownSeconds is how long a tripped HTTP source rejects calls
	// before letting a trial request through.
	CircuitCooldownSeconds int `mapstructure:"circuit_cooldown_seconds" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// ReportConfig represents the report layout and formatting configuration
type ReportConfig struct {
	Mode           string         `mapstructure:"mode" validate:"required,reportmode"`
	ColorPolicy    string         `mapstructure:"color_policy" validate:"required,colorpolicy"`
	Schema         string         `mapstructure:"schema" validate:"omitempty,oneof=performance extended"`
	Columns        []ColumnConfig `mapstructure:"columns" validate:"omitempty,dive"`
	GroupField     string         `mapstructure:"group_field" validate:"required,recordfield"`
	SortField      string         `mapstructure:"sort_field" validate:"omitempty,metricfield"`
	SortDirection  string         `mapstructure:"sort_direction" validate:"required,sortdirection"`
	FilenamePrefix string         `mapstructure:"filename_prefix" validate:"required"`
	SheetName      string         `mapstructure:"sheet_name" validate:"required,max=31"`
	ChartField     string         `mapstructure:"chart_field" validate:"required,metricfield"`
	Labels         LabelsConfig   `mapstructure:"labels"`
}

// ColumnConfig declares one report column
type ColumnConfig struct {
	Field      string  `mapstructure:"field" validate:"required,recordfield"`
	Label      string  `mapstructure:"label" validate:"required"`
	Kind       string  `mapstructure:"kind" validate:"omitempty,oneof=text return drawdown"`
	Width      float64 `mapstructure:"width" validate:"required,gt=0"`
	Emphasized bool    `mapstructure:"emphasized"`
	Align      string  `mapstructure:"align" validate:"omitempty,oneof=left center right"`
}

// LabelsConfig overrides the user-visible report strings
type LabelsConfig struct {
	Title          string `mapstructure:"title"`
	SubtitleFormat string `mapstructure:"subtitle_format"`
	TOCTitle       string `mapstructure:"toc_title"`
	FootnoteFormat string `mapstructure:"footnote_format"`
	PageFormat     string `mapstructure:"page_format"`
	Disclaimer     string `mapstructure:"disclaimer"`
}

// RenderingConfig represents font discovery settings
type RenderingConfig struct {
	FontFamily  string   `mapstructure:"font_family"`
	FontRegular string   `mapstructure:"font_regular"`
	FontBold    string   `mapstructure:"font_bold"`
	FontDirs    []string `mapstructure:"font_dirs"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// SchedulerConfig represents scheduled publishing configuration
type SchedulerConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Cron      string   `mapstructure:"cron"`
	OutputDir string   `mapstructure:"output_dir"`
	Formats   []string `mapstructure:"formats" validate:"omitempty,dive,oneof=pdf xlsx markdown html chart"`
}

// SecretsConfig represents the AWS Secrets Manager overlay
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region" validate:"required_if=Enabled true"`
	SecretName string `mapstructure:"secret_name" validate:"required_if=Enabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ServerAddr returns the listen address of the HTTP server
func (c *Config) ServerAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// SourceTimeout returns the per-request timeout of the record source
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// CircuitCooldown returns the open time of the HTTP source circuit breaker
func (c *Config) CircuitCooldown() time.Duration {
	return time.Duration(c.Source.CircuitCooldownSeconds) * time.Second
}

// CacheTTL returns how long a loaded record snapshot stays fresh; zero disables caching
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Source.CacheTTLSeconds) * time.Second
}
