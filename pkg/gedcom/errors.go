package gedcom

import (
	"fmt"
)

// ParseError reports a line that does not match the GEDCOM line grammar.
type ParseError struct {
	// Line is the 1-based line number, zero when it was not computed.
	Line int

	// Offset is the byte position of the line start.
	Offset int64

	// Text is the offending line, decoded leniently.
	Text string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid syntax at line %d: `%s'", e.Line, e.Text)
	}
	return fmt.Sprintf("invalid syntax at offset %d: `%s'", e.Offset, e.Text)
}

// IntegrityKind classifies structural integrity failures.
type IntegrityKind int

const (
	// Nesting means a level number jumped by more than one.
	Nesting IntegrityKind = iota

	// Continuation means a CONT or CONC line sits at the wrong level.
	Continuation
)

// String returns the kind name.
func (k IntegrityKind) String() string {
	switch k {
	case Nesting:
		return "nesting"
	case Continuation:
		return "continuation"
	default:
		return "unknown"
	}
}

// IntegrityError reports inconsistent level numbering between lines.
type IntegrityError struct {
	Kind IntegrityKind
	Line int
	Text string
}

func (e *IntegrityError) Error() string {
	if e.Kind == Continuation {
		return fmt.Sprintf("Structural integrity - illegal CONC/CONT nesting at line %d: `%s'", e.Line, e.Text)
	}
	return fmt.Sprintf("Structural integrity - illegal level nesting at line %d: `%s'", e.Line, e.Text)
}

// CodecErrorKind classifies character set failures.
type CodecErrorKind int

const (
	// UnknownCodec means the CHAR value names no supported character set.
	UnknownCodec CodecErrorKind = iota

	// CodecConflict means the CHAR value contradicts the byte order mark.
	CodecConflict

	// MissingCharset means the header has no CHAR line and one was required.
	MissingCharset
)

// String returns the kind name.
func (k CodecErrorKind) String() string {
	switch k {
	case UnknownCodec:
		return "unknown codec"
	case CodecConflict:
		return "codec conflict"
	case MissingCharset:
		return "missing charset"
	default:
		return "unknown"
	}
}

// CodecError reports a problem determining the file character set.
type CodecError struct {
	Kind CodecErrorKind

	// Name is the character set named by the CHAR line, if any.
	Name string

	// BOM is the codec implied by the byte order mark, if any.
	BOM string
}

func (e *CodecError) Error() string {
	switch e.Kind {
	case UnknownCodec:
		return fmt.Sprintf("Unknown codec name '%s'", e.Name)
	case CodecConflict:
		return fmt.Sprintf("CHAR codec %s is different from BOM codec %s", e.Name, e.BOM)
	case MissingCharset:
		return "GEDCOM header does not have CHAR record"
	default:
		return "codec error"
	}
}

// ParserError reports a request the reader cannot serve, such as reading
// a record from an offset that is not the start of a line.
type ParserError struct {
	Offset  int64
	Message string
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

// DecodeError reports bytes that are invalid in the file character set
// under the strict decode policy, or a decoder that failed outright.
type DecodeError struct {
	Codec string
	Bytes []byte
	// Err is the decoder failure, nil for invalid bytes.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode %q as %s: %v", e.Bytes, e.Codec, e.Err)
	}
	return fmt.Sprintf("cannot decode %q as %s", e.Bytes, e.Codec)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
