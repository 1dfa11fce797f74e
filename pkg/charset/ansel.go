package charset

// ANSEL (ANSI Z39.47) upper half. Bytes 0x00-0x9F map to themselves.
// Combining diacritics keep their byte order: ANSEL writes them before the
// base letter and they are decoded in that position.
//
//nolint:gochecknoglobals // Read-only lookup table.
var anselHigh = map[byte]rune{
	0xA1: 'Ł', 0xA2: 'Ø', 0xA3: 'Đ', 0xA4: 'Þ', 0xA5: 'Æ', 0xA6: 'Œ',
	0xA7: 'ʹ', 0xA8: '·', 0xA9: '♭', 0xAA: '®', 0xAB: '±', 0xAC: 'Ơ',
	0xAD: 'Ư', 0xAE: 'ʼ', 0xAF: '¯',
	0xB0: 'ʻ', 0xB1: 'ł', 0xB2: 'ø', 0xB3: 'đ', 0xB4: 'þ', 0xB5: 'æ',
	0xB6: 'œ', 0xB7: 'ʺ', 0xB8: 'ı', 0xB9: '£', 0xBA: 'ð', 0xBC: 'ơ',
	0xBD: 'ư', 0xBE: '□', 0xBF: '■',
	0xC0: '°', 0xC1: 'ℓ', 0xC2: '℗', 0xC3: '©', 0xC4: '♯', 0xC5: '¿',
	0xC6: '¡',
	0xE0: '\u0309', 0xE1: '\u0300', 0xE2: '\u0301', 0xE3: '\u0302',
	0xE4: '\u0303', 0xE5: '\u0304', 0xE6: '\u0306', 0xE7: '\u0307',
	0xE8: '\u0308', 0xE9: '\u030C', 0xEA: '\u030A', 0xEB: '\uFE20',
	0xEC: '\uFE21', 0xED: '\u0315', 0xEE: '\u030B', 0xEF: '\u0310',
	0xF0: '\u0327', 0xF1: '\u0328', 0xF2: '\u0323', 0xF3: '\u0324',
	0xF4: '\u0325', 0xF5: '\u0333', 0xF6: '\u0332', 0xF7: '\u0326',
	0xF8: '\u031C', 0xF9: '\u032E', 0xFA: '\uFE22', 0xFB: '\uFE23',
	0xFC: '\u0338', 0xFE: '\u0313',
}

// NewANSEL builds the ANSEL character set used by GEDCOM files that
// declare "CHAR ANSEL" or nothing at all.
func NewANSEL() *Table {
	var decode [256]rune
	for b := range decode {
		switch {
		case b < 0xA0:
			decode[b] = rune(b)
		default:
			r, ok := anselHigh[byte(b)]
			if !ok {
				r = undefined
			}
			decode[b] = r
		}
	}
	return newTable("ansel", decode)
}

// NewASCII builds 7-bit ASCII; bytes 0x80-0xFF are undefined.
func NewASCII() *Table {
	var decode [256]rune
	for b := range decode {
		if b < 0x80 {
			decode[b] = rune(b)
		} else {
			decode[b] = undefined
		}
	}
	return newTable("ascii", decode)
}
