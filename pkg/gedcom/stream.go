package gedcom

import (
	"errors"
	"fmt"
	"io"
)

// LineStream yields the lines of a GEDCOM stream in file order and checks
// level numbering between consecutive lines.
type LineStream struct {
	src     io.ReadSeeker
	enc     Encoding
	policy  DecodePolicy
	lr      *lineReader
	start   int64
	started bool
	prev    *Line
}

// NewLineStream returns a stream reading from offset. Xref and tag are
// decoded with enc; values are returned as raw bytes.
func NewLineStream(src io.ReadSeeker, offset int64, enc Encoding) *LineStream {
	return &LineStream{
		src:    src,
		enc:    enc,
		policy: DecodeStrict,
		lr:     newLineReader(src, offset),
		start:  offset,
	}
}

// Next returns the next line or io.EOF at the end of the stream. Syntax and
// integrity failures leave the stream positioned at the start of the
// offending line.
func (s *LineStream) Next() (Line, error) {
	if !s.started {
		if err := s.lr.reset(s.start); err != nil {
			return Line{}, err
		}
		s.started = true
	}

	raw, offset, err := s.lr.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Line{}, io.EOF
		}
		return Line{}, fmt.Errorf("read line at offset %d: %w", offset, err)
	}

	trimmed := trimLeadingSpace(raw)
	line, err := ParseLine(trimmed, offset)
	if err != nil {
		return Line{}, s.fail(offset, func(lineno int, text string) error {
			return &ParseError{Line: lineno, Offset: offset, Text: text}
		}, trimmed)
	}

	if line.XRef != "" {
		if line.XRef, err = decodeText(s.enc.Codec, s.enc.Name, s.policy, []byte(line.XRef)); err != nil {
			return Line{}, err
		}
	}
	if line.Tag, err = decodeText(s.enc.Codec, s.enc.Name, s.policy, []byte(line.Tag)); err != nil {
		return Line{}, err
	}

	if s.prev != nil {
		if kind, bad := checkIntegrity(*s.prev, line); bad {
			return Line{}, s.fail(offset, func(lineno int, text string) error {
				return &IntegrityError{Kind: kind, Line: lineno, Text: text}
			}, trimmed)
		}
	}

	s.prev = &line
	return line, nil
}

// checkIntegrity validates cur against the line before it.
func checkIntegrity(prev, cur Line) (IntegrityKind, bool) {
	if cur.Level-prev.Level > 1 {
		return Nesting, true
	}
	if cur.isContinuation() {
		want := prev.Level + 1
		if prev.isContinuation() {
			want = prev.Level
		}
		if cur.Level != want {
			return Continuation, true
		}
	}
	return 0, false
}

func (s *LineStream) fail(offset int64, build func(lineno int, text string) error, raw []byte) error {
	lineno := LineNumber(s.src, offset)
	text, _ := decodeText(s.enc.Codec, s.enc.Name, DecodeIgnore, raw)
	if err := s.lr.reset(offset); err != nil {
		return errors.Join(build(lineno, text), err)
	}
	return build(lineno, text)
}
