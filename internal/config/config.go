// Package config provides configuration management for the tools pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidTimeout    = errors.New("validation.timeout_seconds must be at least 1")
	ErrInvalidMaxWorkers = errors.New("validation.max_workers must be at least 1")
	ErrMissingMasterPath = errors.New("output.master_csv is required")
	ErrMissingReportPath = errors.New("output.validation_report is required")
	ErrUnknownEncoding   = errors.New("ingest.encodings entry is not recognized")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrEmptyCategoryRule = errors.New("classifier.categories entries need a name and keywords")
)

// Encodings accepted in the CSV fallback chain.
var supportedEncodings = map[string]bool{
	"utf-8":        true,
	"latin-1":      true,
	"windows-1252": true,
}

// Config represents the complete pipeline configuration.
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ValidationConfig contains link-validation settings.
type ValidationConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxWorkers     int    `yaml:"max_workers"`
	UserAgent      string `yaml:"user_agent"`
}

// Timeout returns the per-request timeout duration.
func (vc ValidationConfig) Timeout() time.Duration {
	return time.Duration(vc.TimeoutSeconds) * time.Second
}

// CategoryRule maps keywords onto one category name. Rules are evaluated
// in order, first match wins.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// ClassifierConfig contains the keyword sets driving access and category
// classification. Empty sets fall back to built-in defaults;
// InternalDomains always extends the internal set.
type ClassifierConfig struct {
	InternalDomains  []string       `yaml:"internal_domains"`
	InternalKeywords []string       `yaml:"internal_keywords"`
	AudienceKeywords []string       `yaml:"audience_keywords"`
	Categories       []CategoryRule `yaml:"categories"`
}

// IngestConfig contains file-reading settings.
type IngestConfig struct {
	Encodings []string `yaml:"encodings"`
}

// OutputConfig defines where pipeline artifacts are written.
type OutputConfig struct {
	MasterCSV        string `yaml:"master_csv"`
	ValidationReport string `yaml:"validation_report"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Validation: ValidationConfig{
			TimeoutSeconds: 10,
			MaxWorkers:     20,
			UserAgent:      "Mozilla/5.0 (Linux; Business Tools Browser) Link Validator/1.0",
		},
		Ingest: IngestConfig{
			Encodings: []string{"utf-8", "latin-1", "windows-1252"},
		},
		Output: OutputConfig{
			MasterCSV:        "data/Master_Tools.csv",
			ValidationReport: "data/Link_Validation_Report.csv",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, layered over defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Validation.TimeoutSeconds < 1 {
		return ErrInvalidTimeout
	}

	if c.Validation.MaxWorkers < 1 {
		return ErrInvalidMaxWorkers
	}

	if c.Output.MasterCSV == "" {
		return ErrMissingMasterPath
	}

	if c.Output.ValidationReport == "" {
		return ErrMissingReportPath
	}

	for _, enc := range c.Ingest.Encodings {
		if !supportedEncodings[enc] {
			return fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	for i, rule := range c.Classifier.Categories {
		if rule.Name == "" || len(rule.Keywords) == 0 {
			return fmt.Errorf("%w: categories[%d]", ErrEmptyCategoryRule, i)
		}
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Workers: %d, Timeout: %ds, Master: %s}",
		c.Validation.MaxWorkers,
		c.Validation.TimeoutSeconds,
		c.Output.MasterCSV,
	)
}
