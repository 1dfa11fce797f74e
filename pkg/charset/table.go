// Package charset provides the single-byte character sets GEDCOM needs
// that golang.org/x/text does not ship: ANSEL and strict 7-bit ASCII.
//
// Each set is a plain value implementing encoding.Encoding; nothing is
// registered globally.
package charset

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// undefined marks a byte without a mapping.
const undefined rune = 0xFFFE

// Table is a single-byte character set described by a 256-entry table.
type Table struct {
	name   string
	decode [256]rune
	encode map[rune]byte
}

var _ encoding.Encoding = (*Table)(nil)

func newTable(name string, decode [256]rune) *Table {
	encode := make(map[rune]byte, len(decode))
	for b, r := range decode {
		if r == undefined {
			continue
		}
		encode[r] = byte(b)
	}
	return &Table{name: name, decode: decode, encode: encode}
}

// String returns the character set name.
func (t *Table) String() string {
	return t.name
}

// Defined reports whether b has a mapping.
func (t *Table) Defined(b byte) bool {
	return t.decode[b] != undefined
}

// NewDecoder returns a decoder that maps undefined bytes to U+FFFD.
func (t *Table) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: decoder{table: t}}
}

// NewEncoder returns an encoder that fails on characters outside the set.
// Wrap it with encoding.ReplaceUnsupported to substitute '?' instead.
func (t *Table) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: encoder{table: t}}
}

type decoder struct {
	transform.NopResetter
	table *Table
}

func (d decoder) Transform(dst, src []byte, _ bool) (int, int, error) {
	nDst, nSrc := 0, 0
	for nSrc < len(src) {
		r := d.table.decode[src[nSrc]]
		if r == undefined {
			r = utf8.RuneError
		}
		if r < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = byte(r)
			nDst++
			nSrc++
			continue
		}
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}
	return nDst, nSrc, nil
}

type encoder struct {
	transform.NopResetter
	table *Table
}

func (e encoder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	nDst, nSrc := 0, 0
	for nSrc < len(src) {
		r, size := rune(src[nSrc]), 1
		if r >= utf8.RuneSelf {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			r, size = utf8.DecodeRune(src[nSrc:])
		}
		b, ok := e.table.encode[r]
		if !ok {
			return nDst, nSrc, &UnsupportedError{Charset: e.table.name, Rune: r}
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc += size
	}
	return nDst, nSrc, nil
}

// UnsupportedError reports a character that has no byte in the set.
type UnsupportedError struct {
	Charset string
	Rune    rune
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("charset %s: character %U is not representable", e.Charset, e.Rune)
}

// Replacement is the byte used by encoding.ReplaceUnsupported.
func (e *UnsupportedError) Replacement() byte {
	return '?'
}
