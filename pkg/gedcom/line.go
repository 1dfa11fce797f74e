package gedcom

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
)

// Line is one GEDCOM line split into its grammar parts.
type Line struct {
	Level int

	// XRef is the cross-reference identifier including the @ delimiters,
	// empty when the line has none.
	XRef string

	Tag string

	// Value holds the raw, undecoded value bytes; nil when absent.
	Value []byte

	// Offset is the byte position of the line start.
	Offset int64
}

// String renders the line back in GEDCOM form with the value shown raw.
func (l Line) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d", l.Level)
	if l.XRef != "" {
		buf.WriteByte(' ')
		buf.WriteString(l.XRef)
	}
	buf.WriteByte(' ')
	buf.WriteString(l.Tag)
	if l.Value != nil {
		buf.WriteByte(' ')
		buf.Write(l.Value)
	}
	return buf.String()
}

func (l Line) isContinuation() bool {
	return l.Tag == "CONT" || l.Tag == "CONC"
}

//nolint:gochecknoglobals // Compiled once, read-only.
var lineRE = regexp.MustCompile(
	`^[ ]*(\d+)(?:[ ]*(@[A-Za-z0-9-][^@]*@))?[ ]*([A-Za-z0-9_-]+)(?:[ ](.*))?$`)

// ParseLine splits a raw line, already stripped of its terminator and
// leading whitespace, into level, xref, tag and value. The xref and tag
// are returned as raw bytes interpreted as text; callers that know the
// file codec decode them. A mismatch yields a *ParseError without a line
// number.
func ParseLine(raw []byte, offset int64) (Line, error) {
	match := lineRE.FindSubmatchIndex(raw)
	if match == nil {
		return Line{}, &ParseError{Offset: offset, Text: string(raw)}
	}

	level, err := strconv.Atoi(string(raw[match[2]:match[3]]))
	if err != nil {
		return Line{}, &ParseError{Offset: offset, Text: string(raw)}
	}

	line := Line{
		Level:  level,
		Tag:    string(raw[match[6]:match[7]]),
		Offset: offset,
	}
	if match[4] >= 0 {
		line.XRef = string(raw[match[4]:match[5]])
	}
	if match[8] >= 0 {
		line.Value = bytes.Clone(raw[match[8]:match[9]])
		if line.Value == nil {
			line.Value = []byte{}
		}
	}
	return line, nil
}

// trimLeadingSpace drops ASCII whitespace before the level number.
func trimLeadingSpace(raw []byte) []byte {
	return bytes.TrimLeft(raw, " \t\v\f")
}
