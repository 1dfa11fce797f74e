package gedcom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/yaklabco/gedkit/pkg/charset"
)

// DecodePolicy selects how bytes invalid in the file codec are handled.
type DecodePolicy string

const (
	// DecodeStrict fails with *DecodeError.
	DecodeStrict DecodePolicy = "strict"

	// DecodeReplace substitutes U+FFFD.
	DecodeReplace DecodePolicy = "replace"

	// DecodeIgnore drops the offending bytes.
	DecodeIgnore DecodePolicy = "ignore"
)

// IsValid returns true if the policy is recognized.
func (p DecodePolicy) IsValid() bool {
	switch p {
	case DecodeStrict, DecodeReplace, DecodeIgnore:
		return true
	default:
		return false
	}
}

// ParseDecodePolicy converts a string to a DecodePolicy; the empty string
// selects DecodeStrict.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	if s == "" {
		return DecodeStrict, nil
	}
	p := DecodePolicy(strings.ToLower(s))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid decode policy %q (valid: strict, replace, ignore)", s)
	}
	return p, nil
}

// Canonical codec names.
const (
	CodecASCII    = "ascii"
	CodecUTF8     = "utf-8"
	CodecUTF16    = "utf-16"
	CodecUTF16LE  = "utf-16-le"
	CodecUTF16BE  = "utf-16-be"
	CodecANSEL    = "ansel"
	CodecCP437    = "cp437"
	CodecCP850    = "cp850"
	CodecCP1250   = "cp1250"
	CodecCP1251   = "cp1251"
	CodecCP1252   = "cp1252"
	CodecLatin1   = "iso8859-1"
	CodecMacRoman = "mac-roman"
)

type codecEntry struct {
	name string
	enc  encoding.Encoding
}

// codecs maps normalized names to their canonical codec.
//
//nolint:gochecknoglobals // Read-only lookup table.
var codecs = func() map[string]codecEntry {
	ascii := codecEntry{CodecASCII, charset.NewASCII()}
	utf8Codec := codecEntry{CodecUTF8, unicode.UTF8}
	utf16 := codecEntry{CodecUTF16, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}
	ansel := codecEntry{CodecANSEL, charset.NewANSEL()}
	cp1250 := codecEntry{CodecCP1250, charmap.Windows1250}
	cp1251 := codecEntry{CodecCP1251, charmap.Windows1251}
	cp1252 := codecEntry{CodecCP1252, charmap.Windows1252}
	latin1 := codecEntry{CodecLatin1, charmap.ISO8859_1}
	macRoman := codecEntry{CodecMacRoman, charmap.Macintosh}

	return map[string]codecEntry{
		"ascii":        ascii,
		"us-ascii":     ascii,
		"utf-8":        utf8Codec,
		"utf8":         utf8Codec,
		"unicode":      utf16,
		"utf-16":       utf16,
		"utf16":        utf16,
		"utf-16-le":    {CodecUTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
		"utf-16le":     {CodecUTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
		"utf-16-be":    {CodecUTF16BE, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
		"utf-16be":     {CodecUTF16BE, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
		"ansel":        ansel,
		"gedcom":       ansel,
		"cp437":        {CodecCP437, charmap.CodePage437},
		"cp850":        {CodecCP850, charmap.CodePage850},
		"cp1250":       cp1250,
		"windows-1250": cp1250,
		"cp1251":       cp1251,
		"windows-1251": cp1251,
		"cp1252":       cp1252,
		"windows-1252": cp1252,
		"iso8859-1":    latin1,
		"iso-8859-1":   latin1,
		"latin-1":      latin1,
		"latin1":       latin1,
		"mac-roman":    macRoman,
		"macroman":     macRoman,
		"macintosh":    macRoman,
	}
}()

func normalizeCodecName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "-", " ", "-").Replace(name)
}

// LookupCodec resolves a character set name to its encoding and canonical
// name. Matching ignores case and treats '_' and ' ' like '-'.
func LookupCodec(name string) (encoding.Encoding, string, bool) {
	entry, ok := codecs[normalizeCodecName(name)]
	if !ok {
		return nil, "", false
	}
	return entry.enc, entry.name, true
}

// isUTF16 reports whether a canonical codec name is a UTF-16 variant.
func isUTF16(name string) bool {
	return name == CodecUTF16 || name == CodecUTF16LE || name == CodecUTF16BE
}

// decodeText converts raw bytes to a string under the given policy.
func decodeText(codec encoding.Encoding, name string, policy DecodePolicy, raw []byte) (string, error) {
	if policy == DecodeIgnore {
		text, err := dropInvalid(codec, raw)
		if err != nil {
			return "", &DecodeError{Codec: name, Bytes: bytes.Clone(raw), Err: err}
		}
		return text, nil
	}

	out, err := codec.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &DecodeError{Codec: name, Bytes: bytes.Clone(raw), Err: err}
	}
	if policy == DecodeReplace || !bytes.ContainsRune(out, utf8.RuneError) {
		return string(out), nil
	}

	back, encErr := codec.NewEncoder().Bytes(out)
	if encErr != nil || !bytes.Equal(back, raw) {
		return "", &DecodeError{Codec: name, Bytes: bytes.Clone(raw)}
	}
	return string(out), nil
}

// dropInvalid decodes raw one character at a time and leaves out the
// replacement characters the decoder substitutes for bytes it cannot map.
// A U+FFFD that raw encodes itself is kept.
func dropInvalid(codec encoding.Encoding, raw []byte) (string, error) {
	replacement := encodedReplacement(codec)
	dec := codec.NewDecoder()

	var (
		b   strings.Builder
		buf [utf8.UTFMax]byte
	)
	b.Grow(len(raw))
	for src := raw; len(src) > 0; {
		// Three bytes hold U+FFFD alone, so a replacement is never mixed
		// with other output in one step. Wider characters need the fourth.
		nDst, nSrc, err := dec.Transform(buf[:3], src, true)
		if nDst == 0 && nSrc == 0 && errors.Is(err, transform.ErrShortDst) {
			nDst, nSrc, err = dec.Transform(buf[:], src, true)
		}
		if err != nil && !errors.Is(err, transform.ErrShortDst) {
			return "", err
		}
		if nDst == 0 && nSrc == 0 {
			return "", fmt.Errorf("decoder made no progress at byte %d", len(raw)-len(src))
		}

		out := buf[:nDst]
		invalid := string(out) == string(utf8.RuneError) && !bytes.Equal(src[:nSrc], replacement)
		if !invalid {
			b.Write(out)
		}
		src = src[nSrc:]
	}
	return b.String(), nil
}

// encodedReplacement returns the bytes codec uses for U+FFFD, without any
// byte order mark, or nil when the codec cannot represent it.
func encodedReplacement(codec encoding.Encoding) []byte {
	one, err := codec.NewEncoder().Bytes([]byte(string(utf8.RuneError)))
	if err != nil {
		return nil
	}
	two, err := codec.NewEncoder().Bytes([]byte(strings.Repeat(string(utf8.RuneError), 2)))
	if err != nil {
		return nil
	}
	unit := len(two) - len(one)
	if unit <= 0 || unit > len(one) {
		return nil
	}
	return one[len(one)-unit:]
}
