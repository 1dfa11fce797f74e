package date

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/gedkit/pkg/calendar"
)

type form struct {
	kind Kind
	re   *regexp.Regexp
}

func compile(prefix, suffix string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + prefix + suffix + `$`)
}

const (
	dateGroup  = `(?P<date>` + calendar.Pattern + `)`
	date1Group = `(?P<date1>` + calendar.Pattern + `)`
	date2Group = `(?P<date2>` + calendar.Pattern + `)`
)

// forms lists the grammar in priority order; the bare date comes last
// because it is the least constrained.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var forms = []form{
	{Period, compile(`FROM\s+`+date1Group, `\s+TO\s+`+date2Group)},
	{From, compile(`FROM\s+`, dateGroup)},
	{To, compile(`TO\s+`, dateGroup)},
	{Range, compile(`BET\s+`+date1Group, `\s+AND\s+`+date2Group)},
	{Before, compile(`BEF\s+`, dateGroup)},
	{After, compile(`AFT\s+`, dateGroup)},
	{About, compile(`ABT\s+`, dateGroup)},
	{Calculated, compile(`CAL\s+`, dateGroup)},
	{Estimated, compile(`EST\s+`, dateGroup)},
	{Interpreted, compile(`INT\s+`+dateGroup, `\s+\((?P<phrase>.*)\)`)},
	{Phrase, compile(`\((?P<phrase>.*)\)`, ``)},
	{Simple, compile(dateGroup, ``)},
}

// Parse reads a GEDCOM date value. Empty input yields the empty value and
// text matching no form yields a Phrase carrying the text; only a date
// inside a recognized form that fails calendar parsing is an error.
func Parse(text string) (Value, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Value{}, nil
	}

	for _, f := range forms {
		match := f.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		return build(f, match, text)
	}

	return NewPhrase(text), nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func build(f form, match []string, text string) (Value, error) {
	group := func(name string) string {
		return match[f.re.SubexpIndex(name)]
	}

	switch f.kind {
	case Phrase:
		return NewPhrase(group("phrase")), nil
	case Period, Range:
		first, err := calendar.Parse(group("date1"))
		if err != nil {
			return Value{}, fmt.Errorf("parse %q: %w", text, err)
		}
		second, err := calendar.Parse(group("date2"))
		if err != nil {
			return Value{}, fmt.Errorf("parse %q: %w", text, err)
		}
		return NewPair(f.kind, first, second), nil
	default:
		d, err := calendar.Parse(group("date"))
		if err != nil {
			return Value{}, fmt.Errorf("parse %q: %w", text, err)
		}
		if f.kind == Interpreted {
			return NewInterpreted(d, group("phrase")), nil
		}
		return NewSingle(f.kind, d), nil
	}
}
