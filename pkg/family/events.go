package family

import "github.com/yaklabco/gedkit/pkg/gedcom"

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	individualEvents = map[string]string{
		"BIRT": "Birth",
		"CHR":  "Christening",
		"BAPM": "Baptism",
		"BARM": "Bar mitzvah",
		"BASM": "Bas mitzvah",
		"CONF": "Confirmation",
		"ADOP": "Adoption",
		"GRAD": "Graduation",
		"OCCU": "Occupation",
		"RESI": "Residence",
		"EMIG": "Emigration",
		"IMMI": "Immigration",
		"NATU": "Naturalization",
		"CENS": "Census",
		"RETI": "Retirement",
		"WILL": "Will",
		"PROB": "Probate",
		"DEAT": "Death",
		"BURI": "Burial",
		"CREM": "Cremation",
		"EVEN": "Event",
	}
	familyEvents = map[string]string{
		"ENGA": "Engagement",
		"MARB": "Marriage banns",
		"MARC": "Marriage contract",
		"MARR": "Marriage",
		"DIV":  "Divorce",
		"ANUL": "Annulment",
		"CENS": "Census",
		"EVEN": "Event",
	}
)

// appendEvents adds one Event per direct sub-record of rec whose tag is
// in labels.
func appendEvents(events []Event, rec *gedcom.Record, owner PersonRef, labels map[string]string) []Event {
	for _, sub := range rec.Sub {
		label, ok := labels[sub.Tag]
		if !ok {
			continue
		}
		typ, _ := sub.SubTagValue("TYPE", nil)
		place, _ := sub.SubTagValue("PLAC", nil)
		events = append(events, Event{
			Owner:    owner,
			OwnerTag: rec.Tag,
			Tag:      sub.Tag,
			Label:    label,
			Type:     typ,
			Date:     newDate(sub.SubTag("DATE", nil)),
			Place:    place,
		})
	}
	return events
}
