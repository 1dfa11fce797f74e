package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// Exit codes for gedkit.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a failure with no more specific code.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates a malformed GEDCOM file or date value.
	ExitDataError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

var (
	// ErrInvalidDates is returned by the date command when at least one
	// argument failed to parse. The table has already been printed.
	ErrInvalidDates = errors.New("invalid date values")

	// ErrConfig marks configuration failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage marks invalid flag values and arguments.
	ErrUsage = errors.New("invalid usage")
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	var (
		parseErr     *gedcom.ParseError
		integrityErr *gedcom.IntegrityError
		codecErr     *gedcom.CodecError
		decodeErr    *gedcom.DecodeError
		parserErr    *gedcom.ParserError
		pathErr      *fs.PathError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidDates),
		errors.Is(err, ErrCheckFailed),
		errors.As(err, &parseErr),
		errors.As(err, &integrityErr),
		errors.As(err, &codecErr),
		errors.As(err, &decodeErr),
		errors.As(err, &parserErr):
		return ExitDataError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}

// IsSilent reports whether err only carries an exit code and needs no log
// line.
func IsSilent(err error) bool {
	return errors.Is(err, ErrInvalidDates) || errors.Is(err, ErrCheckFailed)
}
