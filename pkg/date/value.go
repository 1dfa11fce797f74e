// Package date implements the GEDCOM date-value grammar (periods, ranges,
// approximations, interpreted dates and phrases) on top of package calendar.
package date

import (
	"slices"

	"github.com/yaklabco/gedkit/pkg/calendar"
)

// Kind identifies the form of a date value. The zero Kind is Phrase so the
// zero Value is the empty date.
type Kind int

// Date value kinds.
const (
	Phrase Kind = iota
	Simple
	From
	To
	Period
	Before
	After
	Range
	About
	Calculated
	Estimated
	Interpreted
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	Phrase:      "PHRASE",
	Simple:      "SIMPLE",
	From:        "FROM",
	To:          "TO",
	Period:      "PERIOD",
	Before:      "BEFORE",
	After:       "AFTER",
	Range:       "RANGE",
	About:       "ABOUT",
	Calculated:  "CALCULATED",
	Estimated:   "ESTIMATED",
	Interpreted: "INTERPRETED",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Sentinels bounding open-ended values. They are ordinary Gregorian dates
// far outside any genealogical record.
//
//nolint:gochecknoglobals // Immutable sentinel values.
var (
	StartOfTime = calendar.Date{Calendar: calendar.Gregorian, Year: 5000, BC: true}
	EndOfTime   = calendar.Date{Calendar: calendar.Gregorian, Year: 5000}
)

// Value is a parsed GEDCOM date value.
//
// Date holds the only date of single-date kinds and the first date of
// Period and Range; Date2 holds the second. Phrase is used by Phrase and
// Interpreted. HasPhrase is false only for the empty value.
type Value struct {
	Kind      Kind
	Date      calendar.Date
	Date2     calendar.Date
	Phrase    string
	HasPhrase bool
}

// NewSingle builds a value of a kind carrying one date.
func NewSingle(kind Kind, d calendar.Date) Value {
	return Value{Kind: kind, Date: d}
}

// NewPair builds a Period or Range value.
func NewPair(kind Kind, first, second calendar.Date) Value {
	return Value{Kind: kind, Date: first, Date2: second}
}

// NewInterpreted builds an interpreted date with its phrase.
func NewInterpreted(d calendar.Date, phrase string) Value {
	return Value{Kind: Interpreted, Date: d, Phrase: phrase, HasPhrase: true}
}

// NewPhrase builds a free-text value.
func NewPhrase(phrase string) Value {
	return Value{Kind: Phrase, Phrase: phrase, HasPhrase: true}
}

// IsEmpty reports whether the value came from an empty or missing string.
func (v Value) IsEmpty() bool {
	return v.Kind == Phrase && !v.HasPhrase
}

// String formats the value with spelled-out keywords, e.g.
// "BETWEEN 1 JAN 1900 AND 1910" or "INTERPRETED 1967 (phrase)".
func (v Value) String() string {
	switch v.Kind {
	case Simple:
		return v.Date.String()
	case From:
		return "FROM " + v.Date.String()
	case To:
		return "TO " + v.Date.String()
	case Period:
		return "FROM " + v.Date.String() + " TO " + v.Date2.String()
	case Before:
		return "BEFORE " + v.Date.String()
	case After:
		return "AFTER " + v.Date.String()
	case Range:
		return "BETWEEN " + v.Date.String() + " AND " + v.Date2.String()
	case About:
		return "ABOUT " + v.Date.String()
	case Calculated:
		return "CALCULATED " + v.Date.String()
	case Estimated:
		return "ESTIMATED " + v.Date.String()
	case Interpreted:
		return "INTERPRETED " + v.Date.String() + " (" + v.Phrase + ")"
	case Phrase:
		if !v.HasPhrase {
			return ""
		}
		return "(" + v.Phrase + ")"
	default:
		return ""
	}
}

// Key returns the earliest and latest dates bounding the value. Open ends
// use StartOfTime and EndOfTime; phrases and empty values sort after every
// real date.
func (v Value) Key() (calendar.Date, calendar.Date) {
	switch v.Kind {
	case Simple, About, Calculated, Estimated, Interpreted:
		return v.Date, v.Date
	case From, After:
		return v.Date, EndOfTime
	case To, Before:
		return StartOfTime, v.Date
	case Period, Range:
		return v.Date, v.Date2
	default:
		return EndOfTime, EndOfTime
	}
}

// Compare orders values by their keys, first date first.
func (v Value) Compare(other Value) int {
	first, second := v.Key()
	otherFirst, otherSecond := other.Key()
	if c := first.Compare(otherFirst); c != 0 {
		return c
	}
	return second.Compare(otherSecond)
}

// Equal reports whether both values have equal keys.
func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}

// Less reports whether v sorts before other.
func (v Value) Less(other Value) bool {
	return v.Compare(other) < 0
}

// Sort orders values in place by key, keeping the input order of equal
// values.
func Sort(values []Value) {
	slices.SortStableFunc(values, Value.Compare)
}
