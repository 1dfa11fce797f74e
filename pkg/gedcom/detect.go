package gedcom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is the outcome of character set detection.
type Encoding struct {
	// Name is the canonical codec name, e.g. "utf-8" or "ansel".
	Name string

	// BOMSize is the number of byte order mark bytes before the first line.
	BOMSize int64

	// Codec converts file bytes to UTF-8.
	Codec encoding.Encoding
}

// DetectOptions tunes DetectEncoding.
type DetectOptions struct {
	// RequireCharset makes a header without CHAR an error.
	RequireCharset bool

	// Quiet suppresses diagnostics about illegal character set names.
	Quiet bool

	// Logger receives diagnostics; nil means the charmbracelet default.
	Logger *log.Logger
}

// illegalCharsets are names GEDCOM does not allow but whose meaning is
// clear.
//
//nolint:gochecknoglobals // Read-only lookup table.
var illegalCharsets = map[string]string{
	"windows-1250": CodecCP1250,
	"windows-1251": CodecCP1251,
	"cp1252":       CodecCP1252,
	"iso-8859-1":   CodecLatin1,
	"iso8859-1":    CodecLatin1,
}

// ambiguousCharsets are illegal names that could mean several code pages;
// each maps to the most likely one.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ambiguousCharsets = map[string]string{
	"ibmpc":       CodecCP437,
	"ibm":         CodecCP437,
	"ibm-pc":      CodecCP437,
	"oem":         CodecCP437,
	"msdos":       CodecCP850,
	"ibm dos":     CodecCP850,
	"ms-dos":      CodecCP850,
	"ansi":        CodecCP1252,
	"windows":     CodecCP1252,
	"ibm_windows": CodecCP1252,
	"ibm windows": CodecCP1252,
	"iso8859":     CodecLatin1,
	"latin1":      CodecLatin1,
	"macintosh":   CodecMacRoman,
}

type bom struct {
	mark  []byte
	codec string
}

//nolint:gochecknoglobals // Read-only lookup table.
var boms = []bom{
	{[]byte{0xEF, 0xBB, 0xBF}, CodecUTF8},
	{[]byte{0xFE, 0xFF}, CodecUTF16BE},
	{[]byte{0xFF, 0xFE}, CodecUTF16LE},
}

// checkBOM identifies a byte order mark at the start of r. It returns the
// codec name (empty when there is none) and the mark length, and leaves r
// positioned after the mark.
func checkBOM(r io.ReadSeeker) (string, int64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", 0, fmt.Errorf("seek to start: %w", err)
	}

	lead := make([]byte, 3)
	n, err := io.ReadFull(r, lead)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", 0, fmt.Errorf("read byte order mark: %w", err)
	}
	lead = lead[:n]

	name, size := "", int64(0)
	for _, b := range boms {
		if bytes.HasPrefix(lead, b.mark) {
			name, size = b.codec, int64(len(b.mark))
			break
		}
	}

	if _, err := r.Seek(size, io.SeekStart); err != nil {
		return "", 0, fmt.Errorf("seek past byte order mark: %w", err)
	}
	return name, size, nil
}

// DetectEncoding determines the character set of a GEDCOM stream from its
// byte order mark and the CHAR line of its header. The header is scanned on
// raw bytes, which works for every ASCII-compatible codec; after a UTF-16
// mark the header is transcoded first. On success r is left positioned
// after the mark.
func DetectEncoding(r io.ReadSeeker, opts DetectOptions) (Encoding, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	bomCodec, bomSize, err := checkBOM(r)
	if err != nil {
		return Encoding{}, err
	}

	name := bomCodec
	if name == "" {
		name = CodecANSEL
	}
	codec, _, _ := LookupCodec(name)

	var header io.Reader = r
	if isUTF16(bomCodec) {
		header = transform.NewReader(r, codec.NewDecoder())
		codec = unicode.UTF8
	}

	declaredName, charName, found, err := scanCharset(header, codec, logger, opts.Quiet)
	if err != nil {
		return Encoding{}, err
	}

	if !found {
		if opts.RequireCharset {
			return Encoding{}, &CodecError{Kind: MissingCharset}
		}
	} else {
		declared, ok := codecs[normalizeCodecName(charName)]
		if !ok {
			return Encoding{}, &CodecError{Kind: UnknownCodec, Name: declaredName}
		}
		switch {
		case bomCodec == "":
			if isUTF16(declared.name) {
				return Encoding{}, &CodecError{Kind: CodecConflict, Name: declared.name, BOM: "none"}
			}
			name = declared.name
		case declared.name == bomCodec:
		case declared.name == CodecUTF16 && isUTF16(bomCodec):
		default:
			return Encoding{}, &CodecError{Kind: CodecConflict, Name: declared.name, BOM: bomCodec}
		}
	}

	final, canonical, _ := LookupCodec(name)
	if _, err := r.Seek(bomSize, io.SeekStart); err != nil {
		return Encoding{}, fmt.Errorf("seek past byte order mark: %w", err)
	}
	return Encoding{Name: canonical, BOMSize: bomSize, Codec: final}, nil
}

// scanCharset reads header lines until the CHAR line or the first level-0
// record after HEAD. It returns the name as written on the CHAR line and
// the same name resolved through the alias tables.
func scanCharset(src io.Reader, codec encoding.Encoding, logger *log.Logger, quiet bool) (string, string, bool, error) {
	lr := newLineReader(src, 0)
	for lineno := 1; ; lineno++ {
		raw, _, err := lr.next()
		if errors.Is(err, io.EOF) {
			return "", "", false, fmt.Errorf("read GEDCOM header: %w", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return "", "", false, fmt.Errorf("read GEDCOM header: %w", err)
		}

		line := trimLeadingSpace(raw)
		words := bytes.Fields(line)
		switch {
		case len(words) >= 2 && string(words[0]) == "0" && string(words[1]) != "HEAD":
			return "", "", false, nil
		case len(words) >= 3 && string(words[0]) == "1" && string(words[1]) == "CHAR":
			declared, err := codec.NewDecoder().Bytes(bytes.Join(words[2:], []byte(" ")))
			if err != nil {
				return "", "", false, fmt.Errorf("decode CHAR value: %w", err)
			}
			return string(declared), resolveAlias(string(declared), lineno, string(line), logger, quiet), true, nil
		}
	}
}

func resolveAlias(declared string, lineno int, line string, logger *log.Logger, quiet bool) string {
	lower := strings.ToLower(declared)
	if lower == "ansel" {
		return CodecANSEL
	}

	resolved, illegal := illegalCharsets[lower]
	guess, ambiguous := ambiguousCharsets[lower]
	if ambiguous {
		resolved, illegal = guess, true
	}
	if !illegal {
		return lower
	}

	if !quiet {
		logger.Errorf("Line %d: \"%s\" - \"%s\" is not a legal character set or encoding.", lineno, line, declared)
		if ambiguous {
			logger.Warnf("Character set (\"%s\") is ambiguous, it will be interpreted as \"%s\"", declared, resolved)
		}
	}
	return resolved
}
