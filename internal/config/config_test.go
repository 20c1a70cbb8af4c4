package config

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	columnsConfigPath     = "testdata/columns_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
)

func loadValid(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	return cfg
}

func TestLoadConfigSuccess(t *testing.T) {
	cfg := loadValid(t)

	assert.Equal(t, "fund-report", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, SourceJSON, cfg.Source.Type)
	assert.Equal(t, "$.funds", cfg.Source.RecordsPath)
	assert.Equal(t, "grouped", cfg.Report.Mode)
	assert.Equal(t, "gain_red", cfg.Report.ColorPolicy)
	assert.Equal(t, []string{"pdf", "xlsx"}, cfg.Scheduler.Formats)
	assert.Equal(t, "127.0.0.1:8080", cfg.ServerAddr())
	assert.Equal(t, "For reference only.", cfg.Report.Labels.Disclaimer)
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	assert.Error(t, err)
}

func TestLoadWithDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	require.NoError(t, err)

	assert.Equal(t, "flat", cfg.Report.Mode)
	assert.Equal(t, "gain_green", cfg.Report.ColorPolicy)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "$.funds", cfg.Source.RecordsPath)
	assert.Equal(t, "ytd", cfg.Report.ChartField)
	require.NoError(t, Validate(cfg))
}

func TestLoadConfigEnvironmentVariables(t *testing.T) {
	os.Setenv("FUND_REPORT_APP_NAME", "override")
	defer os.Unsetenv("FUND_REPORT_APP_NAME")

	cfg := loadValid(t)
	assert.Equal(t, "override", cfg.App.Name)
}

func TestLoadConfigExpansion(t *testing.T) {
	os.Setenv("TEST_SOURCE_TOKEN", "expanded_secret_value")
	defer os.Unsetenv("TEST_SOURCE_TOKEN")

	cfg, err := LoadWithDefaults(expansionConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "expanded_secret_value", cfg.Source.APIToken)
	assert.Equal(t, SourceHTTP, cfg.Source.Type)
	require.NoError(t, Validate(cfg))
}

func TestLoadConfigColumns(t *testing.T) {
	cfg, err := LoadWithDefaults(columnsConfigPath)
	require.NoError(t, err)

	require.Len(t, cfg.Report.Columns, 3)
	assert.Equal(t, "ytd", cfg.Report.Columns[1].Field)
	assert.True(t, cfg.Report.Columns[1].Emphasized)
	assert.Equal(t, 20.0, cfg.Report.Columns[2].Width)
	require.NoError(t, Validate(cfg))
}

func TestValidateSuccess(t *testing.T) {
	require.NoError(t, Validate(loadValid(t)))
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		expect string
	}{
		{"environment", func(c *Config) { c.App.Environment = "invalid" }, "Environment"},
		{"log level", func(c *Config) { c.App.LogLevel = "verbose" }, "LogLevel"},
		{"source type", func(c *Config) { c.Source.Type = "ftp" }, "Type"},
		{"color policy", func(c *Config) { c.Report.ColorPolicy = "rainbow" }, "ColorPolicy"},
		{"report mode", func(c *Config) { c.Report.Mode = "tree" }, "Mode"},
		{"sort direction", func(c *Config) { c.Report.SortDirection = "up" }, "SortDirection"},
		{"sort field not metric", func(c *Config) { c.Report.SortField = "manager" }, "SortField"},
		{"group field unknown", func(c *Config) { c.Report.GroupField = "region" }, "GroupField"},
		{"sheet name too long", func(c *Config) { c.Report.SheetName = "a sheet name that is far too long to fit" }, "SheetName"},
		{"json source without path", func(c *Config) { c.Source.Path = "" }, "source.path"},
		{"http source without url", func(c *Config) { c.Source.Type = SourceHTTP }, "source.url"},
		{"postgres source without database", func(c *Config) { c.Source.Type = SourcePostgres }, "postgres"},
		{"bad cron", func(c *Config) { c.Scheduler.Cron = "every day" }, "cron"},
		{"scheduler format", func(c *Config) { c.Scheduler.Formats = []string{"docx"} }, "Formats"},
		{"secrets without region", func(c *Config) { c.Secrets.Enabled = true }, "Region"},
		{"two emphasized columns", func(c *Config) {
			c.Report.Columns = []ColumnConfig{
				{Field: "ytd", Label: "YTD", Kind: "return", Width: 10, Emphasized: true},
				{Field: "mtd", Label: "MTD", Kind: "return", Width: 10, Emphasized: true},
			}
		}, "emphasized"},
		{"metric kind on text column", func(c *Config) {
			c.Report.Columns = []ColumnConfig{{Field: "manager", Label: "M", Kind: "return", Width: 10}}
		}, "metric field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadValid(t)
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expect)
		})
	}
}

func TestValidateEnvironment(t *testing.T) {
	cfg := loadValid(t)
	cfg.App.Environment = "production"
	cfg.Source.Type = SourcePostgres
	cfg.Database.SSLMode = "disable"
	assert.Error(t, ValidateEnvironment(cfg))

	cfg.Database.SSLMode = "require"
	assert.NoError(t, ValidateEnvironment(cfg))

	cfg.App.LogLevel = "debug"
	assert.Error(t, ValidateEnvironment(cfg))
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "localhost", Port: 5432, Name: "funds", User: "report", Password: "pw", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://report:pw@localhost:5432/funds?sslmode=disable", cfg.GetDatabaseDSN())
}

type fakeSecrets struct {
	out *secretsmanager.GetSecretValueOutput
	err error
}

func (f fakeSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return f.out, f.err
}

func TestApplySecrets(t *testing.T) {
	cfg := loadValid(t)
	client := fakeSecrets{out: &secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"database_password":"s3cret","source_api_token":"tok"}`),
	}}

	require.NoError(t, ApplySecrets(context.Background(), cfg, client))
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "tok", cfg.Source.APIToken)
}

func TestApplySecretsErrors(t *testing.T) {
	cfg := loadValid(t)

	err := ApplySecrets(context.Background(), cfg, fakeSecrets{err: errors.New("denied")})
	assert.ErrorContains(t, err, "denied")

	err = ApplySecrets(context.Background(), cfg, fakeSecrets{out: &secretsmanager.GetSecretValueOutput{}})
	assert.ErrorIs(t, err, errNoSecretDataFound)

	err = ApplySecrets(context.Background(), cfg, fakeSecrets{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("{")}})
	assert.Error(t, err)
}
