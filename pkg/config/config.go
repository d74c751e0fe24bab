// Package config resolves uneff settings from a YAML file, environment
// variables, and built-in defaults. Command-line flags are applied on top by
// the CLI, giving the precedence flags > environment > file > defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/uneff-io/uneff/pkg/cleaner"
	"github.com/uneff-io/uneff/pkg/pipeline"
)

// DefaultFile is the config file Load looks for when no path is given.
const DefaultFile = "uneff.yaml"

// Config holds every tunable the CLI exposes.
type Config struct {
	// MappingPath locates the problematic character table
	MappingPath string `yaml:"mapping_path"`
	// OutputPrefix marks cleaned copies written next to their inputs
	OutputPrefix string `yaml:"output_prefix"`
	// SampleLimit caps reported locations per character
	SampleLimit int `yaml:"sample_limit"`
	// ContextWindow is the number of runes shown around each location
	ContextWindow int `yaml:"context_window"`
	// LogLevel sets diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
	// Ignore adds directory-walk ignore patterns for batch cleaning
	Ignore []string `yaml:"ignore"`
	// Concurrency bounds parallel file cleans during batch runs
	Concurrency int `yaml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MappingPath:   pipeline.DefaultMappingFile,
		OutputPrefix:  pipeline.DefaultOutputPrefix,
		SampleLimit:   cleaner.DefaultSampleLimit,
		ContextWindow: cleaner.DefaultContextWindow,
		LogLevel:      "info",
		Ignore:        []string{},
		Concurrency:   pipeline.DefaultConcurrency,
	}
}

// Load resolves the configuration. An explicitly named file must exist; the
// default file is optional. A .env file in the working directory is loaded
// first so UNEFF_ variables can live there.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides cfg fields from UNEFF_ environment variables. Values
// that fail to parse are ignored.
func applyEnv(cfg *Config) {
	if val := os.Getenv("UNEFF_MAPPINGS"); val != "" {
		cfg.MappingPath = val
	}
	if val := os.Getenv("UNEFF_OUTPUT_PREFIX"); val != "" {
		cfg.OutputPrefix = val
	}
	if val := os.Getenv("UNEFF_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}
	if val := os.Getenv("UNEFF_SAMPLE_LIMIT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			cfg.SampleLimit = parsed
		}
	}
	if val := os.Getenv("UNEFF_CONTEXT_WINDOW"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			cfg.ContextWindow = parsed
		}
	}
	if val := os.Getenv("UNEFF_CONCURRENCY"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			cfg.Concurrency = parsed
		}
	}
	if val := os.Getenv("UNEFF_IGNORE"); val != "" {
		patterns := make([]string, 0)
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				patterns = append(patterns, part)
			}
		}
		cfg.Ignore = patterns
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	if c.OutputPrefix == "" {
		errs = append(errs, "output_prefix must not be empty")
	}
	if c.SampleLimit <= 0 {
		errs = append(errs, fmt.Sprintf("sample_limit (%d) must be positive", c.SampleLimit))
	}
	if c.ContextWindow <= 0 {
		errs = append(errs, fmt.Sprintf("context_window (%d) must be positive", c.ContextWindow))
	}
	if c.Concurrency <= 0 {
		errs = append(errs, fmt.Sprintf("concurrency (%d) must be positive", c.Concurrency))
	}
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("log_level (%q) must be one of: trace, debug, info, warn, error", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// FileOptions translates the configuration into per-file clean options.
func (c *Config) FileOptions() pipeline.FileOptions {
	return pipeline.FileOptions{
		MappingPath:   c.MappingPath,
		OutputPrefix:  c.OutputPrefix,
		SampleLimit:   c.SampleLimit,
		ContextWindow: c.ContextWindow,
	}
}

// BatchOptions translates the configuration into batch clean options.
func (c *Config) BatchOptions() pipeline.BatchOptions {
	return pipeline.BatchOptions{
		FileOptions:    c.FileOptions(),
		IgnorePatterns: c.Ignore,
		Concurrency:    c.Concurrency,
	}
}
