package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "sheets source from env",
			env: map[string]string{
				"SALES_STORE_GOOGLE_SHEET_ID":  "sheet-1",
				"SALES_STORE_JSON_CREDENTIALS": `{"type":"service_account"}`,
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, SourceSheets, cfg.Dataset.Source)
				assert.Equal(t, "sheet-1", cfg.Store.SheetID)
				assert.Equal(t, 20*time.Second, cfg.Store.ConnectTimeout)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "salesdash", cfg.Telemetry.ServiceName)
				assert.Equal(t, []string{"http://localhost:8080"}, cfg.Security.AllowedOrigins)
			},
		},
		{
			name: "file source from env",
			env: map[string]string{
				"SALES_DATASET_SOURCE":    "FILE",
				"SALES_DATASET_FILE_PATH": "data/walmart.csv",
				"SALES_SERVER_PORT":       "9090",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, SourceFile, cfg.Dataset.Source)
				assert.Equal(t, "data/walmart.csv", cfg.Dataset.FilePath)
				assert.Equal(t, 9090, cfg.Server.Port)
			},
		},
		{
			name: "yaml file fills unset values",
			file: `
server:
  port: 7070
dataset:
  source: file
  file_path: data/walmart.xlsx
  sheet_name: Walmart
predictor:
  model_path: models/weekly_sales.yaml
logging:
  level: debug
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, SourceFile, cfg.Dataset.Source)
				assert.Equal(t, "Walmart", cfg.Dataset.SheetName)
				assert.Equal(t, "models/weekly_sales.yaml", cfg.Predictor.ModelPath)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "env wins over yaml",
			env: map[string]string{
				"SALES_SERVER_PORT": "9191",
			},
			file: `
server:
  port: 7070
dataset:
  source: file
  file_path: data/walmart.csv
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9191, cfg.Server.Port)
			},
		},
		{
			name:    "sheets source without sheet id",
			env:     map[string]string{"SALES_STORE_JSON_CREDENTIALS": "{}"},
			wantErr: "SALES_STORE_GOOGLE_SHEET_ID is required",
		},
		{
			name:    "sheets source without credentials",
			env:     map[string]string{"SALES_STORE_GOOGLE_SHEET_ID": "sheet-1"},
			wantErr: "SALES_STORE_JSON_CREDENTIALS or SALES_STORE_CREDENTIALS_FILE is required",
		},
		{
			name: "unsupported file extension",
			env: map[string]string{
				"SALES_DATASET_SOURCE":    "file",
				"SALES_DATASET_FILE_PATH": "data/walmart.parquet",
			},
			wantErr: "unsupported dataset file",
		},
		{
			name:    "unknown source",
			env:     map[string]string{"SALES_DATASET_SOURCE": "postgres"},
			wantErr: `unknown dataset source "postgres"`,
		},
		{
			name: "invalid port",
			env: map[string]string{
				"SALES_SERVER_PORT":       "70000",
				"SALES_DATASET_SOURCE":    "file",
				"SALES_DATASET_FILE_PATH": "data/walmart.csv",
			},
			wantErr: "invalid server port: 70000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)

			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			if tt.file != "" {
				path := filepath.Join(dir, "custom.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.file), 0o644))
				t.Setenv("SALES_CONFIG_FILE", path)
			}

			cfg, err := Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_CredentialsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	credsPath := filepath.Join(dir, "service-account.json")
	require.NoError(t, os.WriteFile(credsPath, []byte(`{"type":"service_account"}`), 0o600))

	t.Setenv("SALES_STORE_GOOGLE_SHEET_ID", "sheet-1")
	t.Setenv("SALES_STORE_CREDENTIALS_FILE", credsPath)

	cfg, err := Load()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, cfg.Store.CredentialsJSON)
}

func TestLoad_MissingCredentialsFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SALES_STORE_GOOGLE_SHEET_ID", "sheet-1")
	t.Setenv("SALES_STORE_CREDENTIALS_FILE", "does-not-exist.json")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read credentials file")
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, SourceSheets, cfg.Dataset.Source)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
}

func TestValidate_SampleRatio(t *testing.T) {
	cfg := Default()
	cfg.Dataset = DatasetConfig{Source: SourceFile, FilePath: "walmart.csv"}
	cfg.Telemetry.SampleRatio = 1.5

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample ratio")
}
