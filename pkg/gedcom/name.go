package gedcom

import (
	"fmt"
	"strings"
)

// SplitName partitions a NAME value at its slashes:
//
//	"First /Last/"       -> ("First", "Last", "")
//	"/Last/ First"       -> ("", "Last", "First")
//	"First /Last/ Jr."   -> ("First", "Last", "Jr.")
//	"First Jr."          -> ("First Jr.", "", "")
func SplitName(text string) (string, string, string) {
	given1, rest, _ := strings.Cut(text, "/")
	surname, given2, _ := strings.Cut(rest, "/")
	return strings.TrimSpace(given1), strings.TrimSpace(surname), strings.TrimSpace(given2)
}

// splitNameFor splits a NAME record value using the conventions of its
// dialect. Sub-records must already be frozen.
func splitNameFor(r *Record) NameParts {
	given1, surname, given2 := SplitName(r.Value)
	parts := NameParts{Given1: given1, Surname: surname, Given2: given2}

	switch r.Dialect {
	case DialectAltree:
		// Agelong Tree writes unknown surnames as "?" and appends the maiden
		// surname in parentheses, repeating it in SURN.
		if parts.Surname == "?" {
			parts.Surname = ""
		}
		if maiden, ok := r.SubTagValue("SURN", nil); ok && maiden != "" {
			suffix := "(" + maiden + ")"
			if strings.HasSuffix(parts.Surname, suffix) {
				parts.Surname = strings.TrimSpace(strings.TrimSuffix(parts.Surname, suffix))
				parts.Maiden, parts.HasMaiden = maiden, true
			}
		}
	case DialectMyHeritage:
		if married, ok := r.SubTagValue("_MARNM", nil); ok && married != "" {
			parts.Maiden, parts.HasMaiden = parts.Surname, true
			parts.Surname = married
		}
	case DialectAncestris, DialectDefault:
	}
	return parts
}

// NameOrder selects the components used to sort names.
type NameOrder string

const (
	SurnameGiven NameOrder = "SURNAME_GIVEN"
	GivenSurname NameOrder = "GIVEN_SURNAME"
	MaidenGiven  NameOrder = "MAIDEN_GIVEN"
	GivenMaiden  NameOrder = "GIVEN_MAIDEN"
)

// IsValid returns true if the order is recognized.
func (o NameOrder) IsValid() bool {
	switch o {
	case SurnameGiven, GivenSurname, MaidenGiven, GivenMaiden:
		return true
	default:
		return false
	}
}

// ParseNameOrder converts a string to a NameOrder, ignoring case.
func ParseNameOrder(s string) (NameOrder, error) {
	o := NameOrder(strings.ToUpper(strings.ReplaceAll(s, "-", "_")))
	if !o.IsValid() {
		return "", fmt.Errorf("invalid name order %q (valid: surname_given, given_surname, maiden_given, given_maiden)", s)
	}
	return o, nil
}

// Name summarizes the NAME records of one person around a primary name:
// the first NAME without a TYPE sub-record, or the first NAME when every
// one has a TYPE.
type Name struct {
	names   []*Record
	primary NameParts
	dialect Dialect
}

// NewName builds the summary from NAME records.
func NewName(names []*Record, dialect Dialect) Name {
	n := Name{names: names, dialect: dialect}
	if len(names) == 0 {
		return n
	}

	primary := names[0]
	for _, rec := range names {
		if _, typed := rec.SubTagValue("TYPE", nil); !typed {
			primary = rec
			break
		}
	}
	n.primary = primary.Name
	return n
}

// Surname returns the primary surname.
func (n Name) Surname() string {
	return n.primary.Surname
}

// Given returns the given name including any middle names.
func (n Name) Given() string {
	switch {
	case n.primary.Given1 != "" && n.primary.Given2 != "":
		return n.primary.Given1 + " " + n.primary.Given2
	case n.primary.Given1 != "":
		return n.primary.Given1
	default:
		return n.primary.Given2
	}
}

// First returns the first word of the given name.
func (n Name) First() string {
	fields := strings.Fields(n.Given())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Maiden returns the maiden surname. In the default dialect it comes from a
// NAME record with TYPE maiden; otherwise from the dialect-specific parts
// of the primary name.
func (n Name) Maiden() (string, bool) {
	if n.dialect == DialectDefault {
		for _, rec := range n.names {
			if typ, ok := rec.SubTagValue("TYPE", nil); ok && typ == "maiden" {
				return rec.Name.Surname, true
			}
		}
	}
	if n.primary.HasMaiden {
		return n.primary.Maiden, true
	}
	return "", false
}

// Order returns a two-part sort key. Present components are prefixed with
// "1" and missing ones are "2", so empty names sort last.
func (n Name) Order(order NameOrder) (string, string) {
	surname := n.Surname()
	if order == MaidenGiven || order == GivenMaiden {
		if maiden, ok := n.Maiden(); ok && maiden != "" {
			surname = maiden
		}
	}

	given := orderPart(n.Given())
	surname = orderPart(surname)
	if order == GivenSurname || order == GivenMaiden {
		return given, surname
	}
	return surname, given
}

func orderPart(s string) string {
	if s == "" {
		return "2"
	}
	return "1" + s
}

// Format joins the primary name parts with single spaces.
func (n Name) Format() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{n.primary.Given1, n.primary.Surname, n.primary.Given2} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}
