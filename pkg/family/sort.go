package family

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// SortKey selects the order of listings.
type SortKey string

const (
	// SortFile keeps file order.
	SortFile SortKey = "file"
	// SortName orders by name using a gedcom.NameOrder.
	SortName SortKey = "name"
	// SortBirth orders chronologically: individuals by birth, families by
	// marriage and events by their own date.
	SortBirth SortKey = "birth"
)

// ParseSortKey converts a string to a SortKey; "" is SortFile.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(s)); key {
	case "", SortFile:
		return SortFile, nil
	case SortName, SortBirth:
		return key, nil
	default:
		return "", fmt.Errorf("invalid sort key %q (valid: file, name, birth)", s)
	}
}

// SortIndividuals orders people in place. Ties keep file order.
func SortIndividuals(people []Individual, key SortKey, order gedcom.NameOrder) {
	switch key {
	case SortName:
		slices.SortStableFunc(people, func(a, b Individual) int {
			a1, a2 := a.name.Order(order)
			b1, b2 := b.name.Order(order)
			return cmp.Or(strings.Compare(a1, b1), strings.Compare(a2, b2))
		})
	case SortBirth:
		slices.SortStableFunc(people, func(a, b Individual) int {
			return a.Birth.Value().Compare(b.Birth.Value())
		})
	case SortFile:
	}
}

// SortFamilies orders families in place by label or marriage date.
func SortFamilies(families []Family, key SortKey) {
	switch key {
	case SortName:
		slices.SortStableFunc(families, func(a, b Family) int {
			return strings.Compare(a.Label(), b.Label())
		})
	case SortBirth:
		slices.SortStableFunc(families, func(a, b Family) int {
			return a.Marriage.Value().Compare(b.Marriage.Value())
		})
	case SortFile:
	}
}

// SortEvents orders events in place by owner name or date.
func SortEvents(events []Event, key SortKey) {
	switch key {
	case SortName:
		slices.SortStableFunc(events, func(a, b Event) int {
			return strings.Compare(a.Owner.Name, b.Owner.Name)
		})
	case SortBirth:
		slices.SortStableFunc(events, func(a, b Event) int {
			return a.Date.Value().Compare(b.Date.Value())
		})
	case SortFile:
	}
}
