package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Errors returned by Parse.
var (
	ErrMalformed       = errors.New("malformed date")
	ErrUnknownCalendar = errors.New("unknown calendar")
	ErrDualYear        = errors.New("dual year is only valid in the Gregorian calendar")
)

// Pattern is the unanchored date grammar. Groups, in order: calendar
// name, day, month, year, dual year, B.C. suffix. Callers embedding it in a
// larger expression must compile with the (?i) flag.
const Pattern = `(?:@#D([\w ]+)@\s+)?` +
	`(?:(?:(\d+)\s+)?([A-Z]{3,4})\s+)?` +
	`(?:(\d+)(?:/(\d+))?(\s*?B\.C\.)?)`

//nolint:gochecknoglobals // Compiled once, read-only.
var dateRE = regexp.MustCompile(`(?i)^` + Pattern + `$`)

// Parse reads a GEDCOM date such as "9 OCT 2017", "@#DJULIAN@ 100 B.C."
// or "10 MAR 1699/00".
func Parse(text string) (Date, error) {
	match := dateRE.FindStringSubmatch(text)
	if match == nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformed, text)
	}

	cal := Gregorian
	if match[1] != "" {
		cal = Calendar(strings.ToUpper(match[1]))
		if !cal.IsValid() {
			return Date{}, fmt.Errorf("%w %q in %q", ErrUnknownCalendar, match[1], text)
		}
	}

	year, err := strconv.Atoi(match[4])
	if err != nil {
		return Date{}, fmt.Errorf("%w: year in %q: %w", ErrMalformed, text, err)
	}

	day := 0
	if match[2] != "" {
		day, err = strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("%w: day in %q: %w", ErrMalformed, text, err)
		}
		// Day 0 is the in-memory marker for an absent day.
		if day == 0 {
			return Date{}, fmt.Errorf("%w: day 0 in %q", ErrMalformed, text)
		}
	}

	dual := 0
	if match[5] != "" {
		if cal != Gregorian {
			return Date{}, fmt.Errorf("%w: %q", ErrDualYear, text)
		}
		dual, err = resolveDualYear(match[4], match[5])
		if err != nil {
			return Date{}, fmt.Errorf("%w: dual year in %q: %w", ErrMalformed, text, err)
		}
	}

	return Date{
		Calendar: cal,
		Year:     year,
		Month:    strings.ToUpper(match[3]),
		Day:      day,
		BC:       match[6] != "",
		DualYear: dual,
		Original: text,
	}, nil
}

// resolveDualYear expands the digits after "/" into a full year. A suffix
// at least as long as the year is taken verbatim; a shorter one replaces the
// trailing digits of the year and is pushed forward by centuries until it is
// not before the year ("1699/00" is 1700).
func resolveDualYear(yearText, dualText string) (int, error) {
	if len(dualText) >= len(yearText) {
		return strconv.Atoi(dualText)
	}

	year, err := strconv.Atoi(yearText)
	if err != nil {
		return 0, err
	}
	dual, err := strconv.Atoi(yearText[:len(yearText)-len(dualText)] + dualText)
	if err != nil {
		return 0, err
	}
	for dual < year {
		dual += 100
	}
	return dual, nil
}
