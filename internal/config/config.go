package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration.
// All paths are resolved relative to the working directory.
type PathsConfig struct {
	DataDir        string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir     string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	ExclusionsFile string `yaml:"exclusions_file" envconfig:"EXCLUSIONS_FILE" default:"exclusions.yaml"`
}

// Well-known report files produced by the pipeline commands.
const (
	CombinedDataCSV    = "casco_combined_data.csv"
	SummaryStatsCSV    = "casco_summary_stats.csv"
	MonthlySummaryCSV  = "casco_monthly_summary.csv"
	DailySummaryCSV    = "casco_daily_summary.csv"
	OmegaThresholdsCSV = "casco_omega_thresholds.csv"
	SummaryWorkbook    = "casco_summary.xlsx"
)

// Load loads configuration from environment variables and an optional
// config file. Environment variables take precedence over the file.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("CBOA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// The default config.yaml is optional; a file named explicitly by the
	// caller must exist.
	explicit := configFile != ""
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err != nil {
		if explicit {
			return nil, fmt.Errorf("config file %s: %w", configFile, err)
		}
	} else {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
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

// mergeConfigs merges file config with env config (env takes precedence
// when it differs from the struct defaults)
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	if fileConfig.Logging.Level != "" && envConfig.Logging.Level == "info" {
		merged.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" && envConfig.Logging.Format == "json" {
		merged.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Logging.Output != "" && envConfig.Logging.Output == "console" {
		merged.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && envConfig.Logging.FilePath == "logs/app.log" {
		merged.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Paths.DataDir != "" && envConfig.Paths.DataDir == "data" {
		merged.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if fileConfig.Paths.ReportsDir != "" && envconfigDefault(envConfig.Paths.ReportsDir, "reports") {
		merged.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if fileConfig.Paths.ExclusionsFile != "" && envconfigDefault(envConfig.Paths.ExclusionsFile, "exclusions.yaml") {
		merged.Paths.ExclusionsFile = fileConfig.Paths.ExclusionsFile
	}

	return merged
}

func envconfigDefault(value, def string) bool {
	return value == def
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	if c.Paths.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.Paths.ReportsDir == "" {
		return fmt.Errorf("reports directory is required")
	}

	return nil
}

// CombinedDataPath returns the path of the combined cleaned observation CSV.
func (c *Config) CombinedDataPath() string {
	return filepath.Join(c.Paths.ReportsDir, CombinedDataCSV)
}

// ReportPath returns the path of a named report file under the reports
// directory.
func (c *Config) ReportPath(name string) string {
	return filepath.Join(c.Paths.ReportsDir, name)
}
