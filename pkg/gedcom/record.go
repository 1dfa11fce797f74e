package gedcom

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gedkit/pkg/date"
)

// Kind identifies how a record value was interpreted when it was frozen.
type Kind int

const (
	// KindGeneric keeps the decoded text value.
	KindGeneric Kind = iota

	// KindPointer marks a value of the form @ref@.
	KindPointer

	// KindPerson marks an INDI record.
	KindPerson

	// KindName marks a NAME record; Name holds the split parts.
	KindName

	// KindDate marks a DATE record; Date holds the parsed value.
	KindDate
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = map[Kind]string{
	KindGeneric: "generic",
	KindPointer: "pointer",
	KindPerson:  "person",
	KindName:    "name",
	KindDate:    "date",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Dialect identifies the application that produced a file when its output
// needs special interpretation.
type Dialect string

const (
	// DialectDefault applies no vendor-specific rules.
	DialectDefault Dialect = "DEF"
	// DialectMyHeritage marks files whose HEAD/SOUR is MYHERITAGE.
	DialectMyHeritage Dialect = "MYHER"
	// DialectAltree marks files written by Agelong Tree (HEAD/SOUR ALTREE).
	DialectAltree Dialect = "AGELONG"
	// DialectAncestris marks files whose HEAD/SOUR is ANCESTRIS.
	DialectAncestris Dialect = "ANCESTRIS"
)

// dialectFromSource maps a HEAD/SOUR value to a dialect.
func dialectFromSource(source string) Dialect {
	switch source {
	case "MYHERITAGE":
		return DialectMyHeritage
	case "ALTREE":
		return DialectAltree
	case "ANCESTRIS":
		return DialectAncestris
	default:
		return DialectDefault
	}
}

// NameParts is the split form of a NAME value. Surname is the text between
// slashes; Given1 and Given2 are the text before and after it.
type NameParts struct {
	Given1  string
	Surname string
	Given2  string

	// Maiden is set by dialects that encode a maiden surname in the name.
	Maiden    string
	HasMaiden bool
}

// Record is one GEDCOM record with its subordinate records. Records are
// built by Reader and not modified afterwards.
type Record struct {
	Level int
	XRef  string
	Tag   string

	// Value is the decoded value text including CONT and CONC
	// continuations. For pointers it is the reference, e.g. "@I1@".
	Value    string
	HasValue bool

	Kind Kind
	Name NameParts
	Date date.Value

	// DateErr holds the failure when a DATE value names an unknown
	// calendar or is otherwise malformed; Date then carries the raw text
	// as a phrase.
	DateErr error

	Sub     []*Record
	Offset  int64
	Dialect Dialect
}

// Ref returns the referenced identifier of a pointer record.
func (r *Record) Ref() (string, bool) {
	if r == nil || r.Kind != KindPointer {
		return "", false
	}
	return r.Value, true
}

// String describes the record for logging.
func (r *Record) String() string {
	if r == nil {
		return "<nil>"
	}
	value := r.Value
	if len([]rune(value)) > 32 {
		value = string([]rune(value)[:32]) + "..."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s(level=%d", r.Kind, r.Level)
	if r.XRef != "" {
		fmt.Fprintf(&b, ", xref=%s", r.XRef)
	}
	fmt.Fprintf(&b, ", tag=%s", r.Tag)
	if r.HasValue {
		fmt.Fprintf(&b, ", value=%q", value)
	}
	fmt.Fprintf(&b, ", offset=%d, #sub=%d)", r.Offset, len(r.Sub))
	return b.String()
}

// freeze interprets the decoded value according to the record tag. pointer
// reports whether the first line of the record held a reference.
func (r *Record) freeze(pointer bool) {
	switch {
	case pointer:
		r.Kind = KindPointer
	case r.Tag == "INDI":
		r.Kind = KindPerson
	case r.Tag == "NAME":
		r.Kind = KindName
		r.Name = splitNameFor(r)
	case r.Tag == "DATE":
		r.Kind = KindDate
		parsed, err := date.Parse(r.Value)
		if err != nil {
			r.DateErr = err
			parsed = date.NewPhrase(strings.TrimSpace(r.Value))
		}
		r.Date = parsed
	default:
		r.Kind = KindGeneric
	}
}

func isPointerValue(value []byte) bool {
	return len(value) > 2 && value[0] == '@' && value[len(value)-1] == '@'
}
