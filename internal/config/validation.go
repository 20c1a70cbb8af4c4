package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"github.com/yourusername/fund-report/internal/models"
	"github.com/yourusername/fund-report/internal/report"
)

// Source types
const (
	SourceJSON     = "json"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("sourcetype", validateSourceType)
	_ = v.RegisterValidation("colorpolicy", validateColorPolicy)
	_ = v.RegisterValidation("reportmode", validateReportMode)
	_ = v.RegisterValidation("sortdirection", validateSortDirection)
	_ = v.RegisterValidation("metricfield", validateMetricField)
	_ = v.RegisterValidation("recordfield", validateRecordField)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateSourceType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case SourceJSON, SourceHTTP, SourcePostgres:
		return true
	default:
		return false
	}
}

func validateColorPolicy(fl validator.FieldLevel) bool {
	_, err := report.ColorPolicyByName(fl.Field().String())
	return err == nil
}

func validateReportMode(fl validator.FieldLevel) bool {
	_, err := report.ParseMode(fl.Field().String())
	return err == nil
}

func validateSortDirection(fl validator.FieldLevel) bool {
	_, err := report.ParseSortDirection(fl.Field().String())
	return err == nil
}

func validateMetricField(fl validator.FieldLevel) bool {
	f, err := models.ParseField(fl.Field().String())
	return err == nil && f.IsMetric()
}

func validateRecordField(fl validator.FieldLevel) bool {
	_, err := models.ParseField(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	switch cfg.Source.Type {
	case SourceJSON:
		if cfg.Source.Path == "" {
			return fmt.Errorf("source.path is required for the json source")
		}
	case SourceHTTP:
		if cfg.Source.URL == "" {
			return fmt.Errorf("source.url is required for the http source")
		}
	case SourcePostgres:
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database host, name and user are required for the postgres source")
		}
		if cfg.Source.Table == "" {
			return fmt.Errorf("source.table is required for the postgres source")
		}
		if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
			return fmt.Errorf("max_idle_connections cannot exceed max_connections")
		}
	}

	if cfg.Scheduler.Enabled {
		if _, err := cron.ParseStandard(cfg.Scheduler.Cron); err != nil {
			return fmt.Errorf("invalid scheduler.cron expression %q: %w", cfg.Scheduler.Cron, err)
		}
		if cfg.Scheduler.OutputDir == "" {
			return fmt.Errorf("scheduler.output_dir is required when the scheduler is enabled")
		}
		if len(cfg.Scheduler.Formats) == 0 {
			return fmt.Errorf("scheduler.formats must list at least one format")
		}
	}

	emphasized := 0
	for _, c := range cfg.Report.Columns {
		if c.Emphasized {
			emphasized++
		}
		kind := c.Kind
		if kind != "" && kind != "text" {
			f, _ := models.ParseField(c.Field)
			if !f.IsMetric() {
				return fmt.Errorf("report column %q: %s kind requires a metric field", c.Field, kind)
			}
		}
	}
	if emphasized > 1 {
		return fmt.Errorf("at most one report column may be emphasized")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required", "required_if":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "sourcetype":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: json, http, postgres\n", field)
		case "colorpolicy":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: gain_green, gain_red\n", field)
		case "reportmode":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: flat, grouped\n", field)
		case "sortdirection":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: ascending, descending\n", field)
		case "metricfield":
			errMsg += fmt.Sprintf("- Field '%s' must name a metric field, got '%v'\n", field, value)
		case "recordfield":
			errMsg += fmt.Sprintf("- Field '%s' must name a record field, got '%v'\n", field, value)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		if cfg.Source.Type == SourcePostgres && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires database SSL mode to be 'require' or 'verify-full'")
		}
		if cfg.App.LogLevel == "debug" {
			return fmt.Errorf("debug logging should be disabled in production")
		}
	}
	return nil
}
