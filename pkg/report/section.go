package report

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gedkit/internal/ui/pretty"
	"github.com/yaklabco/gedkit/pkg/family"
	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// Section is a titled table of string cells. The first column is the
// record reference and the second its display name.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
	Count   pretty.Count
}

func refName(ref *family.PersonRef) string {
	if ref == nil {
		return ""
	}
	if ref.Name == "" {
		return ref.XRef
	}
	return ref.Name
}

func withPlace(d *family.Date, place string) string {
	text := d.String()
	switch {
	case text == "":
		return place
	case place == "":
		return text
	default:
		return text + ", " + place
	}
}

func individualsSection(people []family.Individual) Section {
	s := Section{
		Title:   "Individuals",
		Headers: []string{"XREF", "NAME", "SEX", "BIRTH", "DEATH", "FATHER", "MOTHER"},
		Count:   pretty.Count{N: len(people), Singular: "individual", Plural: "individuals"},
	}
	for _, p := range people {
		s.Rows = append(s.Rows, []string{
			p.XRef,
			p.Name,
			p.Sex,
			withPlace(p.Birth, p.BirthPlace),
			withPlace(p.Death, p.DeathPlace),
			refName(p.Father),
			refName(p.Mother),
		})
	}
	return s
}

func familiesSection(families []family.Family) Section {
	s := Section{
		Title:   "Families",
		Headers: []string{"XREF", "FAMILY", "MARRIAGE", "CHILDREN"},
		Count:   pretty.Count{N: len(families), Singular: "family", Plural: "families"},
	}
	for _, f := range families {
		children := make([]string, 0, len(f.Children))
		for _, c := range f.Children {
			if born := c.Birth.String(); born != "" {
				children = append(children, c.Name+" (b. "+born+")")
			} else {
				children = append(children, c.Name)
			}
		}
		s.Rows = append(s.Rows, []string{
			f.XRef,
			f.Label(),
			withPlace(f.Marriage, f.MarriagePlace),
			strings.Join(children, "; "),
		})
	}
	return s
}

func eventsSection(events []family.Event) Section {
	s := Section{
		Title:   "Events",
		Headers: []string{"XREF", "OWNER", "EVENT", "DATE", "PLACE"},
		Count:   pretty.Count{N: len(events), Singular: "event", Plural: "events"},
	}
	for _, e := range events {
		label := e.Label
		if e.Type != "" {
			label += " (" + e.Type + ")"
		}
		s.Rows = append(s.Rows, []string{e.Owner.XRef, e.Owner.Name, label, e.Date.String(), e.Place})
	}
	return s
}

func recordsSection(entries []gedcom.Entry) Section {
	s := Section{
		Title:   "Records",
		Headers: []string{"XREF", "TAG", "OFFSET"},
		Count:   pretty.Count{N: len(entries), Singular: "record", Plural: "records"},
	}
	for _, e := range entries {
		s.Rows = append(s.Rows, []string{e.XRef, e.Tag, strconv.FormatInt(e.Offset, 10)})
	}
	return s
}

func datesSection(results []DateResult) Section {
	s := Section{
		Title:   "Dates",
		Headers: []string{"INPUT", "KIND", "VALUE", "FROM", "TO"},
		Count:   pretty.Count{N: len(results), Singular: "date", Plural: "dates"},
	}
	for _, r := range results {
		value := r.Formatted
		if r.Error != "" {
			value = "error: " + r.Error
		}
		s.Rows = append(s.Rows, []string{r.Input, r.Kind, value, formatJD(r.From), formatJD(r.To)})
	}
	return s
}

func formatJD(jd float64) string {
	if jd == 0 {
		return ""
	}
	return strconv.FormatFloat(jd, 'f', 1, 64)
}

// flattenRecord lists a record tree depth-first.
func flattenRecord(rec *gedcom.Record) []pretty.TreeLine {
	if rec == nil {
		return nil
	}
	lines := []pretty.TreeLine{{Level: rec.Level, XRef: rec.XRef, Tag: rec.Tag, Value: rec.Value}}
	for _, sub := range rec.Sub {
		lines = append(lines, flattenRecord(sub)...)
	}
	return lines
}
