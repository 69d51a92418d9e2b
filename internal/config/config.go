// Package config provides configuration management for the converter.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/nconklindev/shopmigrate/internal/schema"
)

// Configuration validation errors.
var (
	ErrInvalidMaxVariants    = errors.New("grouping.max_variants must be between 1 and 90")
	ErrInvalidInputDelimiter = errors.New("input.delimiter must be a single character")
	ErrInvalidOutputDelim    = errors.New("output.delimiter must be a single character")
	ErrInvalidEncoding       = errors.New("input.encoding must be one of: utf-8, windows-1252, iso-8859-1")
	ErrInvalidLimit          = errors.New("input.limit must be non-negative")
	ErrMissingFallbackHandle = errors.New("store.fallback_handle is required")
	ErrMissingFootSizeOption = errors.New("grouping.foot_size_option is required")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat      = errors.New("logging.format must be 'text' or 'json'")
)

// Encodings accepted for CSV input.
var Encodings = []string{"utf-8", "windows-1252", "iso-8859-1"}

// Config represents the complete converter configuration.
type Config struct {
	Store              StoreConfig       `yaml:"store"`
	Input              InputConfig       `yaml:"input"`
	Output             OutputConfig      `yaml:"output"`
	Grouping           GroupingConfig    `yaml:"grouping"`
	Logging            LoggingConfig     `yaml:"logging"`
	OptionTranslations map[string]string `yaml:"option_translations"`
}

// StoreConfig holds values written into every product.
type StoreConfig struct {
	Vendor         string `yaml:"vendor"`
	FallbackHandle string `yaml:"fallback_handle"`
}

// InputConfig defines how exports are read.
type InputConfig struct {
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
	Sheet     string `yaml:"sheet"`
	Limit     int    `yaml:"limit"`
}

// OutputConfig defines how the import file is written.
type OutputConfig struct {
	Delimiter string `yaml:"delimiter"`
	BOM       bool   `yaml:"bom"`
	Suffix    string `yaml:"suffix"`
}

// GroupingConfig controls variant partitioning.
type GroupingConfig struct {
	MaxVariants    int      `yaml:"max_variants"`
	FootSizeOption string   `yaml:"foot_size_option"`
	VariantFields  []string `yaml:"variant_fields"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			FallbackHandle: "product",
		},
		Input: InputConfig{
			Delimiter: ",",
			Encoding:  "utf-8",
		},
		Output: OutputConfig{
			Delimiter: ",",
			Suffix:    "_shopify",
		},
		Grouping: GroupingConfig{
			MaxVariants:    schema.MaxGroupRows,
			FootSizeOption: "Foot Size",
			VariantFields:  slices.Clone(schema.VariantFields),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
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
	if strings.TrimSpace(c.Store.FallbackHandle) == "" {
		return ErrMissingFallbackHandle
	}

	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return ErrInvalidInputDelimiter
	}

	if !slices.Contains(Encodings, strings.ToLower(c.Input.Encoding)) {
		return ErrInvalidEncoding
	}

	if c.Input.Limit < 0 {
		return ErrInvalidLimit
	}

	if utf8.RuneCountInString(c.Output.Delimiter) != 1 {
		return ErrInvalidOutputDelim
	}

	if c.Grouping.MaxVariants < 1 || c.Grouping.MaxVariants > schema.MaxGroupRows {
		return ErrInvalidMaxVariants
	}

	if c.Grouping.FootSizeOption == "" {
		return ErrMissingFootSizeOption
	}

	for _, f := range c.Grouping.VariantFields {
		if !slices.Contains(schema.Columns, f) {
			return fmt.Errorf("grouping.variant_fields: unknown column %q", f)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Comma returns the input delimiter as a rune, or comma when unset.
func (in InputConfig) Comma() rune {
	if in.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(in.Delimiter)
	return r
}

// OutputComma returns the output delimiter as a rune.
func (c *Config) OutputComma() rune {
	r, _ := utf8.DecodeRuneInString(c.Output.Delimiter)
	return r
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Vendor: %q, MaxVariants: %d, Input: %q/%s, Output: %q, Translations: %d}",
		c.Store.Vendor,
		c.Grouping.MaxVariants,
		c.Input.Delimiter,
		c.Input.Encoding,
		c.Output.Delimiter,
		len(c.OptionTranslations),
	)
}
