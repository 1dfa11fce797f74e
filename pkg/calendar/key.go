package calendar

import "cmp"

// farFutureJD is used when no candidate day of an incomplete date exists in
// its calendar (31 December 9999, Gregorian).
const farFutureJD = 5373483.5

// Key orders dates across calendars. Flag is 1 when the day or the month
// was not given, so the date sorts after the last fully specified day of
// its period and before the first day of the next one.
type Key struct {
	JD   float64
	Flag int
}

// Compare returns -1, 0 or +1 ordering by JD and then by Flag.
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.JD, other.JD); c != 0 {
		return c
	}
	return cmp.Compare(k.Flag, other.Flag)
}

type triple struct {
	year, month, day int
}

// Key computes the ordering key of the date.
//
// A missing month is replaced by the start of the next year and a missing
// day by the start of the next month, half a day earlier. Hebrew and French
// Republican dates use the last day of the period instead, half a day
// later. When the calendar rejects the synthesized day, the first day of the
// following month and then of the following year are tried.
func (d Date) Key() Key {
	cal := d.Kind()
	sys := systems[cal]

	year := d.Year
	if cal == Gregorian && d.DualYear != 0 {
		year = d.DualYear
	}
	if d.BC {
		year = -year
	}

	month := d.MonthNum()
	flag := 0
	if month == 0 || d.Day == 0 {
		flag = 1
	}

	var target triple
	var shift float64
	switch {
	case month == 0 && sys.lastDay:
		last := sys.months(year)
		target = triple{year, last, sys.monthDays(year, last)}
		shift = 0.5
	case month == 0:
		target = triple{year + 1, 1, 1}
		shift = -0.5
	case d.Day == 0 && sys.lastDay:
		target = triple{year, month, sys.monthDays(year, month)}
		shift = 0.5
	case d.Day == 0:
		target = sys.nextMonth(year, month)
		shift = -0.5
	default:
		target = triple{year, month, d.Day}
	}

	candidates := [...]triple{
		target,
		sys.nextMonth(target.year, target.month),
		{target.year + 1, 1, 1},
	}
	for _, c := range candidates {
		if sys.valid(c.year, c.month, c.day) {
			return Key{JD: sys.toJD(c.year, c.month, c.day) + shift, Flag: flag}
		}
	}
	return Key{JD: farFutureJD, Flag: flag}
}

func (s system) nextMonth(year, month int) triple {
	if month >= s.months(year) {
		return triple{year + 1, 1, 1}
	}
	return triple{year, month + 1, 1}
}
