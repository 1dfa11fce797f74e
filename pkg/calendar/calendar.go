// Package calendar parses GEDCOM calendar dates and orders them across
// calendar systems using Julian Day numbers.
package calendar

import (
	"slices"
	"strconv"
	"strings"
)

// Calendar names a GEDCOM calendar system. The value is the name used in
// the "@#D<NAME>@" escape.
type Calendar string

// Calendars supported by the parser. ROMAN and UNKNOWN are reserved by
// GEDCOM but not implemented.
const (
	Gregorian Calendar = "GREGORIAN"
	Julian    Calendar = "JULIAN"
	Hebrew    Calendar = "HEBREW"
	French    Calendar = "FRENCH R"
)

//nolint:gochecknoglobals // Read-only lookup table.
var monthNames = map[Calendar][]string{
	Gregorian: {"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"},
	Julian:    {"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"},
	Hebrew:    {"TSH", "CSH", "KSL", "TVT", "SHV", "ADR", "ADS", "NSN", "IYR", "SVN", "TMZ", "AAV", "ELL"},
	French: {
		"VEND", "BRUM", "FRIM", "NIVO", "PLUV", "VENT", "GERM",
		"FLOR", "PRAI", "MESS", "THER", "FRUC", "COMP",
	},
}

// String returns the calendar name.
func (c Calendar) String() string {
	return string(c)
}

// IsValid reports whether c is one of the supported calendars.
func (c Calendar) IsValid() bool {
	switch c {
	case Gregorian, Julian, Hebrew, French:
		return true
	default:
		return false
	}
}

// Months returns the GEDCOM month names of the calendar in file order.
func (c Calendar) Months() []string {
	return slices.Clone(monthNames[c.orDefault()])
}

func (c Calendar) orDefault() Calendar {
	if c == "" {
		return Gregorian
	}
	return c
}

// Date is a single GEDCOM calendar date. A zero Calendar means Gregorian.
//
// Month holds the upper-cased month name as written, or "" when no month
// was given. Day is 0 when absent and is only meaningful when Month is set.
// DualYear is 0 unless the Gregorian "YYYY/YY" notation was used.
type Date struct {
	Calendar Calendar
	Year     int
	Month    string
	Day      int
	BC       bool
	DualYear int
	Original string
}

// New makes a date in the given calendar. Pass "" for an unknown month and
// 0 for an unknown day.
func New(cal Calendar, year int, month string, day int) Date {
	return Date{
		Calendar: cal,
		Year:     year,
		Month:    strings.ToUpper(month),
		Day:      day,
	}
}

// Kind returns the date's calendar, defaulting to Gregorian.
func (d Date) Kind() Calendar {
	return d.Calendar.orDefault()
}

// MonthNum returns the 1-based month index within the calendar, or 0 when
// the month is absent or not a known name.
func (d Date) MonthNum() int {
	if d.Month == "" {
		return 0
	}
	idx := slices.Index(monthNames[d.Kind()], strings.ToUpper(d.Month))
	return idx + 1
}

// YearString formats the year with its dual-year and B.C. suffixes.
func (d Date) YearString() string {
	year := strconv.Itoa(d.Year)
	if d.DualYear != 0 {
		dual := strconv.Itoa(d.DualYear)
		if len(dual) > 2 {
			dual = dual[len(dual)-2:]
		}
		year += "/" + dual
	}
	if d.BC {
		year += " B.C."
	}
	return year
}

// String formats the date in GEDCOM notation. Non-Gregorian dates carry
// their calendar escape.
func (d Date) String() string {
	parts := make([]string, 0, 4)
	if cal := d.Kind(); cal != Gregorian {
		parts = append(parts, "@#D"+string(cal)+"@")
	}
	if d.Day != 0 {
		parts = append(parts, strconv.Itoa(d.Day))
	}
	if d.Month != "" {
		parts = append(parts, d.Month)
	}
	parts = append(parts, d.YearString())
	return strings.Join(parts, " ")
}

// Compare orders two dates by their keys and returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	return d.Key().Compare(other.Key())
}

// Equal reports whether both dates have the same key.
func (d Date) Equal(other Date) bool {
	return d.Key() == other.Key()
}

// Before reports whether d sorts before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d sorts after other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}
