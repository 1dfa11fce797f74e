// Package config defines the gedkit configuration types. They are plain
// data; loading and layering live in internal/configloader.
package config

import (
	"fmt"
	"strings"
)

// OutputFormat selects how command results are rendered.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatHTML  OutputFormat = "html"
)

// IsValid returns true if the format is recognized.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatTable, FormatHTML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat converts a string to an OutputFormat, ignoring case.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid format %q (valid: text, json, table, html)", s)
	}
	return f, nil
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the mode is recognized.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// OutputConfig groups the rendering options.
type OutputConfig struct {
	Format  OutputFormat `yaml:"format"`
	Color   ColorMode    `yaml:"color"`
	Compact bool         `yaml:"compact,omitempty"`
}

// ExportConfig groups the SQLite export options.
type ExportConfig struct {
	// Database is the default --db path.
	Database string `yaml:"database,omitempty"`
}

// Config is the root configuration.
type Config struct {
	// DecodePolicy is strict, replace or ignore.
	DecodePolicy string `yaml:"decode_policy"`

	// RequireCharset rejects files whose header has no CHAR line.
	RequireCharset *bool `yaml:"require_charset,omitempty"`

	// Encoding forces a codec instead of the one the header declares.
	Encoding string `yaml:"encoding,omitempty"`

	// NameOrder is the sort key used for person listings.
	NameOrder string `yaml:"name_order"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Jobs bounds how many files "gedkit check" reads at once. 0 means
	// one per CPU.
	Jobs int `yaml:"jobs,omitempty"`

	Output OutputConfig `yaml:"output"`
	Export ExportConfig `yaml:"export,omitempty"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	requireCharset := false
	return &Config{
		DecodePolicy:   "strict",
		RequireCharset: &requireCharset,
		NameOrder:      "surname_given",
		LogLevel:       "info",
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
	}
}

// RequiresCharset reports the effective require_charset value.
func (c *Config) RequiresCharset() bool {
	return c != nil && c.RequireCharset != nil && *c.RequireCharset
}
