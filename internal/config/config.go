package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable, e.g. SALES_SERVER_PORT.
const EnvPrefix = "SALES"

// Dataset source kinds.
const (
	SourceSheets = "sheets"
	SourceFile   = "file"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Store     StoreConfig     `yaml:"store" envconfig:"STORE"`
	Dataset   DatasetConfig   `yaml:"dataset" envconfig:"DATASET"`
	Predictor PredictorConfig `yaml:"predictor" envconfig:"PREDICTOR"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"25s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"20"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"40"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/salesdash.log"`
}

// StoreConfig locates the Google Sheets record store.
type StoreConfig struct {
	SheetID         string        `yaml:"sheet_id" envconfig:"GOOGLE_SHEET_ID"`
	CredentialsJSON string        `yaml:"-" envconfig:"JSON_CREDENTIALS"`
	CredentialsFile string        `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
	Worksheet       string        `yaml:"worksheet" envconfig:"WORKSHEET"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" envconfig:"CONNECT_TIMEOUT" default:"20s"`
}

// DatasetConfig selects where the dashboard reads its records from.
type DatasetConfig struct {
	Source    string `yaml:"source" envconfig:"SOURCE" default:"sheets"`
	FilePath  string `yaml:"file_path" envconfig:"FILE_PATH"`
	SheetName string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
}

// PredictorConfig locates the pre-trained model artifact. An empty path
// disables prediction.
type PredictorConfig struct {
	ModelPath string `yaml:"model_path" envconfig:"MODEL_PATH"`
}

// TelemetryConfig controls tracing and metrics export.
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME" default:"salesdash"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" default:"prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// Load loads configuration from environment variables and an optional YAML
// file. Environment values win over file values.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.resolveCredentials(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs fills fields the environment left unset from the file.
// Defaults applied by envconfig count as unset only for string fields, so
// the file can pick the store and dataset without repeating them in env.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if os.Getenv(EnvPrefix+"_SERVER_PORT") == "" && fileConfig.Server.Port != 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if len(fileConfig.Security.AllowedOrigins) > 0 && os.Getenv(EnvPrefix+"_SECURITY_ALLOWED_ORIGINS") == "" {
		envConfig.Security.AllowedOrigins = fileConfig.Security.AllowedOrigins
	}
	if os.Getenv(EnvPrefix+"_LOGGING_LEVEL") == "" && fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}

	if envConfig.Store.SheetID == "" {
		envConfig.Store.SheetID = fileConfig.Store.SheetID
	}
	if envConfig.Store.CredentialsFile == "" {
		envConfig.Store.CredentialsFile = fileConfig.Store.CredentialsFile
	}
	if envConfig.Store.Worksheet == "" {
		envConfig.Store.Worksheet = fileConfig.Store.Worksheet
	}

	if os.Getenv(EnvPrefix+"_DATASET_SOURCE") == "" && fileConfig.Dataset.Source != "" {
		envConfig.Dataset.Source = fileConfig.Dataset.Source
	}
	if envConfig.Dataset.FilePath == "" {
		envConfig.Dataset.FilePath = fileConfig.Dataset.FilePath
	}
	if envConfig.Dataset.SheetName == "" {
		envConfig.Dataset.SheetName = fileConfig.Dataset.SheetName
	}

	if envConfig.Predictor.ModelPath == "" {
		envConfig.Predictor.ModelPath = fileConfig.Predictor.ModelPath
	}

	return envConfig
}

// resolveCredentials reads the service account file when no inline JSON is set.
func (c *Config) resolveCredentials() error {
	if c.Store.CredentialsJSON != "" || c.Store.CredentialsFile == "" {
		return nil
	}
	data, err := os.ReadFile(c.Store.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to read credentials file: %w", err)
	}
	c.Store.CredentialsJSON = string(data)
	return nil
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	c.Dataset.Source = strings.ToLower(strings.TrimSpace(c.Dataset.Source))
	switch c.Dataset.Source {
	case SourceSheets:
		if c.Store.SheetID == "" {
			return fmt.Errorf("%s_STORE_GOOGLE_SHEET_ID is required for the sheets source", EnvPrefix)
		}
		if c.Store.CredentialsJSON == "" {
			return fmt.Errorf("%s_STORE_JSON_CREDENTIALS or %s_STORE_CREDENTIALS_FILE is required for the sheets source", EnvPrefix, EnvPrefix)
		}
	case SourceFile:
		if c.Dataset.FilePath == "" {
			return fmt.Errorf("%s_DATASET_FILE_PATH is required for the file source", EnvPrefix)
		}
		switch strings.ToLower(filepath.Ext(c.Dataset.FilePath)) {
		case ".csv", ".xlsx":
		default:
			return fmt.Errorf("unsupported dataset file %q: want .csv or .xlsx", c.Dataset.FilePath)
		}
	default:
		return fmt.Errorf("unknown dataset source %q", c.Dataset.Source)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be within [0,1]")
	}

	return nil
}

// getConfigFilePath returns the path to the config file, or "" if there is none
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  25 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     20,
				Burst:   40,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/salesdash.log",
		},
		Store: StoreConfig{
			ConnectTimeout: 20 * time.Second,
		},
		Dataset: DatasetConfig{
			Source: SourceSheets,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "salesdash",
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}
