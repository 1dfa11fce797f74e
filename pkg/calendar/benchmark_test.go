package calendar_test

import (
	"testing"

	"github.com/yaklabco/gedkit/pkg/calendar"
)

func BenchmarkParse(b *testing.B) {
	inputs := []string{"2 FEB 1920", "10 MAR 1698/99", "@#DJULIAN@ 1 JAN 1700", "@#DHEBREW@ 15 NSN 5782", "@#DFRENCH R@ 1 VEND 1"}

	b.ResetTimer()
	for i := range b.N {
		if _, err := calendar.Parse(inputs[i%len(inputs)]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKey(b *testing.B) {
	dates := []calendar.Date{
		calendar.New(calendar.Gregorian, 1920, "FEB", 2),
		calendar.New(calendar.Julian, 1700, "JAN", 1),
		calendar.New(calendar.Hebrew, 5782, "NSN", 15),
		calendar.New(calendar.French, 1, "VEND", 1),
		calendar.New(calendar.Gregorian, 1920, "", 0),
	}

	b.ResetTimer()
	for i := range b.N {
		_ = dates[i%len(dates)].Key()
	}
}
