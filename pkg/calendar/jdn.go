package calendar

import "math"

// Julian Day arithmetic. Years are astronomical-style signed integers as
// produced by Date.Key (B.C. years are negated, there is no year shift).

const (
	gregorianEpoch = 1721425.5
	hebrewEpoch    = 347995.5
	frenchEpoch    = 2375839.5 // 1 Vendémiaire an I, 22 September 1792.
)

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// system describes one calendar's arithmetic. Months are GEDCOM 1-based
// indices in file order.
type system struct {
	months    func(year int) int
	monthDays func(year, month int) int
	toJD      func(year, month, day int) float64
	// lastDay selects the "last day of the period" policy for missing
	// fields instead of rolling over to the next period.
	lastDay bool
}

func (s system) valid(year, month, day int) bool {
	if month < 1 || month > s.months(year) {
		return false
	}
	return day >= 1 && day <= s.monthDays(year, month)
}

//nolint:gochecknoglobals // Read-only lookup table.
var systems = map[Calendar]system{
	Gregorian: {
		months:    func(int) int { return 12 },
		monthDays: gregorianMonthDays,
		toJD:      gregorianToJD,
	},
	Julian: {
		months:    func(int) int { return 12 },
		monthDays: julianMonthDays,
		toJD:      julianToJD,
	},
	Hebrew: {
		months:    func(int) int { return 13 },
		monthDays: hebrewMonthDaysGEDCOM,
		toJD:      hebrewToJDGEDCOM,
		lastDay:   true,
	},
	French: {
		months:    func(int) int { return 13 },
		monthDays: frenchMonthDays,
		toJD:      frenchToJD,
		lastDay:   true,
	},
}

//nolint:gochecknoglobals // Read-only lookup table.
var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func gregorianLeap(year int) bool {
	return floorMod(year, 4) == 0 && (floorMod(year, 100) != 0 || floorMod(year, 400) == 0)
}

func gregorianMonthDays(year, month int) int {
	if month == 2 && gregorianLeap(year) {
		return 29
	}
	return monthLengths[month-1]
}

func gregorianToJD(year, month, day int) float64 {
	var adjust int
	switch {
	case month <= 2:
		adjust = 0
	case gregorianLeap(year):
		adjust = -1
	default:
		adjust = -2
	}
	prior := year - 1
	days := 365*prior + floorDiv(prior, 4) - floorDiv(prior, 100) + floorDiv(prior, 400) +
		floorDiv(367*month-362+12*(adjust+day), 12)
	return gregorianEpoch - 1 + float64(days)
}

func julianLeap(year int) bool {
	return floorMod(year, 4) == 0
}

func julianMonthDays(year, month int) int {
	if month == 2 && julianLeap(year) {
		return 29
	}
	return monthLengths[month-1]
}

func julianToJD(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	days := floorDiv(1461*(year+4716), 4) + floorDiv(306001*(month+1), 10000) + day
	return float64(days) - 1524.5
}

// Hebrew arithmetic below numbers months from Nisan (1) to Adar (12) and
// Adar II (13); the civil year starts with Tishri (7).

const (
	hebrewTishri = 7
	hebrewAdar   = 12
	hebrewAdarII = 13
)

func hebrewLeap(year int) bool {
	return floorMod(year*7+1, 19) < 7
}

func hebrewYearMonths(year int) int {
	if hebrewLeap(year) {
		return 13
	}
	return 12
}

func hebrewElapsed(year int) int {
	months := (235*year - 234) / 19
	parts := 12084 + 13753*months
	day := int(math.Trunc(float64(months*29) + float64(parts)/25920))
	if floorMod(3*(day+1), 7) < 3 {
		day++
	}
	return day
}

func hebrewYearDelay(year int) int {
	last := hebrewElapsed(year - 1)
	present := hebrewElapsed(year)
	next := hebrewElapsed(year + 1)
	switch {
	case next-present == 356:
		return 2
	case present-last == 382:
		return 1
	default:
		return 0
	}
}

func hebrewYearDays(year int) int {
	return int(hebrewToJD(year+1, hebrewTishri, 1) - hebrewToJD(year, hebrewTishri, 1))
}

func hebrewMonthDays(year, month int) int {
	switch {
	case month == 2 || month == 4 || month == 6 || month == 10 || month == hebrewAdarII:
		return 29
	case month == hebrewAdar && !hebrewLeap(year):
		return 29
	case month == 8 && hebrewYearDays(year)%10 != 5:
		return 29
	case month == 9 && hebrewYearDays(year)%10 == 3:
		return 29
	default:
		return 30
	}
}

func hebrewToJD(year, month, day int) float64 {
	jd := hebrewEpoch + float64(hebrewElapsed(year)+hebrewYearDelay(year)+day+1)
	if month < hebrewTishri {
		for m := hebrewTishri; m <= hebrewYearMonths(year); m++ {
			jd += float64(hebrewMonthDays(year, m))
		}
		for m := 1; m < month; m++ {
			jd += float64(hebrewMonthDays(year, m))
		}
	} else {
		for m := hebrewTishri; m < month; m++ {
			jd += float64(hebrewMonthDays(year, m))
		}
	}
	return jd
}

// hebrewFromGEDCOM maps the GEDCOM order (TSH=1 ... ELL=13) onto the
// Nisan-based numbering. ADS (Adar II) only exists in leap years.
func hebrewFromGEDCOM(month int) int {
	if month <= 7 {
		return month + 6
	}
	return month - 7
}

func hebrewMonthDaysGEDCOM(year, month int) int {
	m := hebrewFromGEDCOM(month)
	if m > hebrewYearMonths(year) {
		return 0
	}
	return hebrewMonthDays(year, m)
}

func hebrewToJDGEDCOM(year, month, day int) float64 {
	return hebrewToJD(year, hebrewFromGEDCOM(month), day)
}

// French Republican years follow an arithmetic rule: a year is sextile
// when the following year number is a Gregorian leap year (3, 7, 11, 15, 19,
// ...).

func frenchLeap(year int) bool {
	return gregorianLeap(year + 1)
}

func frenchMonthDays(year, month int) int {
	if month == 13 {
		if frenchLeap(year) {
			return 6
		}
		return 5
	}
	return 30
}

func frenchToJD(year, month, day int) float64 {
	days := 365*(year-1) + floorDiv(year, 4) - floorDiv(year, 100) + floorDiv(year, 400) +
		30*(month-1) + day - 1
	return frenchEpoch + float64(days)
}
