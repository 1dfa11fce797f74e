package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gedkit/pkg/config"
	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// ValidationError is one invalid configuration field.
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects every invalid field.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins all errors, or returns nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

func (r *ValidationResult) add(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks every enumerated field. Empty values are accepted so that
// partial layers validate too.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.DecodePolicy != "" {
		if _, err := gedcom.ParseDecodePolicy(cfg.DecodePolicy); err != nil {
			result.add("decode_policy", cfg.DecodePolicy, "%v", err)
		}
	}
	if cfg.Encoding != "" {
		if _, _, ok := gedcom.LookupCodec(cfg.Encoding); !ok {
			result.add("encoding", cfg.Encoding, "unknown codec %q", cfg.Encoding)
		}
	}
	if cfg.NameOrder != "" {
		if _, err := gedcom.ParseNameOrder(cfg.NameOrder); err != nil {
			result.add("name_order", cfg.NameOrder, "%v", err)
		}
	}
	if cfg.LogLevel != "" && !IsValidLogLevel(cfg.LogLevel) {
		result.add("log_level", cfg.LogLevel, "invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.Jobs < 0 {
		result.add("jobs", cfg.Jobs, "must not be negative")
	}
	if cfg.Output.Format != "" && !cfg.Output.Format.IsValid() {
		result.add("output.format", cfg.Output.Format, "invalid format %q; must be one of: text, json, table, html", cfg.Output.Format)
	}
	if cfg.Output.Color != "" && !cfg.Output.Color.IsValid() {
		result.add("output.color", cfg.Output.Color, "invalid color %q; must be one of: auto, always, never", cfg.Output.Color)
	}
	return result
}

// ValidateWithFile validates and tags every error with filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	return result
}

// IsValidLogLevel returns true for debug, info, warn, warning and error.
func IsValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}
