// Package family collects the people, families and events of a GEDCOM file
// into flat view structs shared by the reporters and the SQLite export.
package family

import (
	"context"
	"fmt"

	"github.com/yaklabco/gedkit/pkg/date"
	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// Date is a DATE value in display form.
type Date struct {
	// Text is the value as written in the file.
	Text string `json:"text"`
	// Kind names the date value kind, e.g. "SIMPLE" or "RANGE".
	Kind string `json:"kind"`
	// Formatted is the value with spelled-out keywords.
	Formatted string `json:"formatted"`
	// JD is the Julian Day of the earliest bound, or of the only bound of
	// BEF and TO values. It is 0 for phrases.
	JD float64 `json:"jd,omitempty"`

	value date.Value
}

// Value returns the parsed date value.
func (d *Date) Value() date.Value {
	if d == nil {
		return date.Value{}
	}
	return d.value
}

// String returns the formatted value, or "" for a nil date.
func (d *Date) String() string {
	if d == nil {
		return ""
	}
	return d.Formatted
}

// PersonRef identifies an individual by reference and display name.
type PersonRef struct {
	XRef string `json:"xref"`
	Name string `json:"name"`
}

// Individual is one INDI record.
type Individual struct {
	XRef       string     `json:"xref"`
	Name       string     `json:"name"`
	Given      string     `json:"given,omitempty"`
	Surname    string     `json:"surname,omitempty"`
	Maiden     string     `json:"maiden,omitempty"`
	Sex        string     `json:"sex"`
	Birth      *Date      `json:"birth,omitempty"`
	BirthPlace string     `json:"birth_place,omitempty"`
	Death      *Date      `json:"death,omitempty"`
	DeathPlace string     `json:"death_place,omitempty"`
	Father     *PersonRef `json:"father,omitempty"`
	Mother     *PersonRef `json:"mother,omitempty"`
	Offset     int64      `json:"offset"`

	name gedcom.Name
}

// Child is a CHIL of a family with its birth date.
type Child struct {
	PersonRef
	Birth *Date `json:"birth,omitempty"`
}

// Family is one FAM record.
type Family struct {
	XRef          string     `json:"xref"`
	Husband       *PersonRef `json:"husband,omitempty"`
	Wife          *PersonRef `json:"wife,omitempty"`
	Marriage      *Date      `json:"marriage,omitempty"`
	MarriagePlace string     `json:"marriage_place,omitempty"`
	Children      []Child    `json:"children,omitempty"`
	Offset        int64      `json:"offset"`
}

// Label names the family by its spouses.
func (f *Family) Label() string {
	var husband, wife string
	if f.Husband != nil {
		husband = f.Husband.Name
	}
	if f.Wife != nil {
		wife = f.Wife.Name
	}
	switch {
	case husband != "" && wife != "":
		return husband + " & " + wife
	case husband != "":
		return husband
	case wife != "":
		return wife
	default:
		return f.XRef
	}
}

// Event is a dated fact attached to an individual or a family.
type Event struct {
	Owner PersonRef `json:"owner"`
	// OwnerTag is INDI or FAM.
	OwnerTag string `json:"owner_tag"`
	Tag      string `json:"tag"`
	Label    string `json:"label"`
	Type     string `json:"type,omitempty"`
	Date     *Date  `json:"date,omitempty"`
	Place    string `json:"place,omitempty"`
}

// Tree is everything Load collects, in file order.
type Tree struct {
	Individuals []Individual
	Families    []Family
	Events      []Event
}

// Load reads every INDI and FAM record of reader. Pointers are followed
// through one Resolver shared by the whole load.
func Load(ctx context.Context, reader *gedcom.Reader) (*Tree, error) {
	res := gedcom.NewResolver(reader)
	tree := &Tree{}

	for rec, err := range reader.Records("INDI") {
		if err != nil {
			return nil, fmt.Errorf("read individuals: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tree.Individuals = append(tree.Individuals, newIndividual(rec, res))
		tree.Events = appendEvents(tree.Events, rec, personRef(rec), individualEvents)
	}

	for rec, err := range reader.Records("FAM") {
		if err != nil {
			return nil, fmt.Errorf("read families: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fam := newFamily(rec, res)
		tree.Families = append(tree.Families, fam)
		tree.Events = appendEvents(tree.Events, rec, PersonRef{XRef: fam.XRef, Name: fam.Label()}, familyEvents)
	}

	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("follow pointers: %w", err)
	}
	return tree, nil
}

func newDate(rec *gedcom.Record) *Date {
	if rec == nil || rec.Kind != gedcom.KindDate {
		return nil
	}
	d := &Date{
		Text:      rec.Value,
		Kind:      rec.Date.Kind.String(),
		Formatted: rec.Date.String(),
		value:     rec.Date,
	}
	if rec.Date.Kind != date.Phrase {
		first, second := rec.Date.Key()
		if first == date.StartOfTime {
			first = second
		}
		d.JD = first.Key().JD
	}
	return d
}

func personRef(rec *gedcom.Record) PersonRef {
	return PersonRef{XRef: rec.XRef, Name: rec.PersonName().Format()}
}

func optionalRef(rec *gedcom.Record) *PersonRef {
	if rec == nil || rec.Kind != gedcom.KindPerson {
		return nil
	}
	ref := personRef(rec)
	return &ref
}

func newIndividual(rec *gedcom.Record, res *gedcom.Resolver) Individual {
	name := rec.PersonName()
	maiden, _ := name.Maiden()
	birthPlace, _ := rec.SubTagValue("BIRT/PLAC", nil)
	deathPlace, _ := rec.SubTagValue("DEAT/PLAC", nil)

	return Individual{
		XRef:       rec.XRef,
		Name:       name.Format(),
		Given:      name.Given(),
		Surname:    name.Surname(),
		Maiden:     maiden,
		Sex:        rec.Sex(),
		Birth:      newDate(rec.SubTag("BIRT/DATE", nil)),
		BirthPlace: birthPlace,
		Death:      newDate(rec.SubTag("DEAT/DATE", nil)),
		DeathPlace: deathPlace,
		Father:     optionalRef(res.Father(rec)),
		Mother:     optionalRef(res.Mother(rec)),
		Offset:     rec.Offset,
		name:       name,
	}
}

func newFamily(rec *gedcom.Record, res *gedcom.Resolver) Family {
	place, _ := rec.SubTagValue("MARR/PLAC", nil)
	fam := Family{
		XRef:          rec.XRef,
		Husband:       optionalRef(rec.SubTag("HUSB", res)),
		Wife:          optionalRef(rec.SubTag("WIFE", res)),
		Marriage:      newDate(rec.SubTag("MARR/DATE", nil)),
		MarriagePlace: place,
		Offset:        rec.Offset,
	}
	for _, child := range rec.SubTags(res, "CHIL") {
		if child.Kind != gedcom.KindPerson {
			continue
		}
		fam.Children = append(fam.Children, Child{
			PersonRef: personRef(child),
			Birth:     newDate(child.SubTag("BIRT/DATE", nil)),
		})
	}
	return fam
}
