package report

import (
	"io"
	"os"

	"github.com/yaklabco/gedkit/pkg/config"
)

// bufWriterSize is the buffer size of report writers.
const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	// Writer receives the report. Defaults to os.Stdout.
	Writer io.Writer

	Format config.OutputFormat

	// Color is "auto", "always" or "never".
	Color string

	// Compact disables JSON indentation.
	Compact bool

	// TermWidth overrides the detected terminal width for tables.
	TermWidth int
}

// DefaultOptions returns text output on stdout.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: config.FormatText,
		Color:  string(config.ColorAuto),
	}
}
