package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Tenure policies for out-of-range years_as_customer values. The source
// material is ambiguous about the corrective action, so it stays configurable.
const (
	TenurePolicyClip = "clip"
	TenurePolicyDrop = "drop"
	TenurePolicyFlag = "flag"
)

// Config represents the complete application configuration
type Config struct {
	Cleaning   CleaningConfig   `yaml:"cleaning" envconfig:"CLEANING"`
	Efficiency EfficiencyConfig `yaml:"efficiency" envconfig:"EFFICIENCY"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
}

// CleaningConfig contains business-rule parameters for the cleaning stage
type CleaningConfig struct {
	TenurePolicy       string `yaml:"tenure_policy" envconfig:"TENURE_POLICY" validate:"oneof=clip drop flag"`
	MaxYearsAsCustomer int    `yaml:"max_years_as_customer" envconfig:"MAX_YEARS_AS_CUSTOMER" validate:"gt=0"`
	MaxWeek            int    `yaml:"max_week" envconfig:"MAX_WEEK" validate:"gt=0"`
}

// EfficiencyConfig contains the per-method time-cost constants behind the
// TRMNS metric. These are configuration inputs, never derived from data.
type EfficiencyConfig struct {
	MinutesPerEmail        float64 `yaml:"minutes_per_email" envconfig:"MINUTES_PER_EMAIL" validate:"gt=0"`
	MinutesPerCall         float64 `yaml:"minutes_per_call" envconfig:"MINUTES_PER_CALL" validate:"gt=0"`
	MinutesPerEmailAndCall float64 `yaml:"minutes_per_email_and_call" envconfig:"MINUTES_PER_EMAIL_AND_CALL" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Load loads configuration from the optional YAML file at configPath, then
// overlays environment variables (SALES_ prefix). Env takes precedence.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		fileCfg, err := loadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		*cfg = mergeConfigs(*fileCfg, *cfg)
	}

	if err := envconfig.Process("SALES", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfigs merges file config over base defaults (file takes precedence
// for any field it sets; zero values fall back to the base)
func mergeConfigs(fileConfig, base Config) Config {
	merged := fileConfig

	if merged.Cleaning.TenurePolicy == "" {
		merged.Cleaning.TenurePolicy = base.Cleaning.TenurePolicy
	}
	if merged.Cleaning.MaxYearsAsCustomer == 0 {
		merged.Cleaning.MaxYearsAsCustomer = base.Cleaning.MaxYearsAsCustomer
	}
	if merged.Cleaning.MaxWeek == 0 {
		merged.Cleaning.MaxWeek = base.Cleaning.MaxWeek
	}
	if merged.Efficiency.MinutesPerEmail == 0 {
		merged.Efficiency.MinutesPerEmail = base.Efficiency.MinutesPerEmail
	}
	if merged.Efficiency.MinutesPerCall == 0 {
		merged.Efficiency.MinutesPerCall = base.Efficiency.MinutesPerCall
	}
	if merged.Efficiency.MinutesPerEmailAndCall == 0 {
		merged.Efficiency.MinutesPerEmailAndCall = base.Efficiency.MinutesPerEmailAndCall
	}
	if merged.Logging.Level == "" {
		merged.Logging.Level = base.Logging.Level
	}
	if merged.Logging.Format == "" {
		merged.Logging.Format = base.Logging.Format
	}
	if merged.Logging.Output == "" {
		merged.Logging.Output = base.Logging.Output
	}
	if merged.Logging.FilePath == "" {
		merged.Logging.FilePath = base.Logging.FilePath
	}
	if merged.Paths.ReportsDir == "" {
		merged.Paths.ReportsDir = base.Paths.ReportsDir
	}
	if merged.Paths.LogsDir == "" {
		merged.Paths.LogsDir = base.Paths.LogsDir
	}

	return merged
}

// Validate validates the configuration using struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	// JSON is the only supported log format
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	return nil
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Cleaning: CleaningConfig{
			TenurePolicy:       TenurePolicyClip,
			MaxYearsAsCustomer: 39,
			MaxWeek:            6,
		},
		Efficiency: EfficiencyConfig{
			MinutesPerEmail:        0.5,
			MinutesPerCall:         30,
			MinutesPerEmailAndCall: 15,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
	}
}
