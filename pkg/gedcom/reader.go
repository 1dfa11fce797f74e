// Package gedcom reads GEDCOM genealogy files: it detects the character
// set, indexes level-0 records by offset and cross-reference, and
// assembles record trees on demand.
package gedcom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/unicode"
)

// Options configures a Reader.
type Options struct {
	// Encoding forces a codec by name instead of the detected one.
	// Detection still runs to find the byte order mark.
	Encoding string

	// DecodePolicy controls invalid byte handling; empty means strict.
	DecodePolicy DecodePolicy

	// RequireCharset makes a header without CHAR an error.
	RequireCharset bool

	// Logger receives diagnostics; nil means the charmbracelet default.
	Logger *log.Logger
}

// Entry locates one level-0 record.
type Entry struct {
	Offset int64
	Tag    string
	XRef   string
}

// Index lists level-0 records in file order and maps xrefs to them.
type Index struct {
	Entries []Entry
	xrefs   map[string]Entry
}

// Lookup returns the entry for an xref such as "@I1@".
func (ix *Index) Lookup(xref string) (Entry, bool) {
	e, ok := ix.xrefs[xref]
	return e, ok
}

// Len returns the number of level-0 records.
func (ix *Index) Len() int {
	return len(ix.Entries)
}

// Reader provides random access to the records of a GEDCOM stream. It is
// not safe for concurrent use.
type Reader struct {
	src      io.ReadSeeker
	closer   io.Closer
	detected Encoding
	lines    Encoding
	policy   DecodePolicy
	size     int64
	logger   *log.Logger

	index    *Index
	indexing bool
	header   *Record
	dialect  Dialect
}

// Open opens a GEDCOM file by path.
func Open(path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r, err := NewReader(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader detects the character set of src and prepares a Reader. UTF-16
// input is transcoded to UTF-8 in memory, so record offsets of such files
// refer to the transcoded text.
func NewReader(src io.ReadSeeker, opts Options) (*Reader, error) {
	policy := opts.DecodePolicy
	if policy == "" {
		policy = DecodeStrict
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("invalid decode policy %q", policy)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	detected, err := DetectEncoding(src, DetectOptions{
		RequireCharset: opts.RequireCharset,
		Quiet:          opts.Encoding != "",
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	if opts.Encoding != "" {
		codec, name, ok := LookupCodec(opts.Encoding)
		if !ok {
			return nil, &CodecError{Kind: UnknownCodec, Name: opts.Encoding}
		}
		detected.Codec, detected.Name = codec, name
	}
	logger.Debug("detected encoding", "codec", detected.Name, "bom", detected.BOMSize)

	r := &Reader{
		src:      src,
		detected: detected,
		lines:    detected,
		policy:   policy,
		logger:   logger,
		dialect:  DialectDefault,
	}

	if isUTF16(detected.Name) {
		if err := r.transcode(); err != nil {
			return nil, err
		}
	}

	size, err := r.src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("determine stream size: %w", err)
	}
	r.size = size
	return r, nil
}

// transcode replaces a UTF-16 source with its UTF-8 equivalent.
func (r *Reader) transcode() error {
	if _, err := r.src.Seek(r.detected.BOMSize, io.SeekStart); err != nil {
		return fmt.Errorf("seek past byte order mark: %w", err)
	}
	raw, err := io.ReadAll(r.src)
	if err != nil {
		return fmt.Errorf("read UTF-16 stream: %w", err)
	}
	text, err := decodeText(r.detected.Codec, r.detected.Name, r.policy, raw)
	if err != nil {
		return err
	}
	r.src = bytes.NewReader([]byte(text))
	r.lines = Encoding{Name: CodecUTF8, Codec: unicode.UTF8}
	return nil
}

// Close releases the file opened by Open. It is a no-op for readers built
// with NewReader.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Encoding returns the detected or forced encoding of the file.
func (r *Reader) Encoding() Encoding {
	return r.detected
}

// Lines returns a stream over the raw lines starting at offset.
func (r *Reader) Lines(offset int64) *LineStream {
	s := NewLineStream(r.src, offset, r.lines)
	s.policy = r.policy
	return s
}

// Index scans the file once and returns the level-0 record index. When the
// first record is HEAD it is assembled too and fixes the dialect.
func (r *Reader) Index() (*Index, error) {
	if r.index != nil {
		return r.index, nil
	}

	ix := &Index{xrefs: make(map[string]Entry)}
	stream := r.Lines(r.lines.BOMSize)
	for {
		line, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line.Level != 0 {
			continue
		}
		entry := Entry{Offset: line.Offset, Tag: line.Tag, XRef: line.XRef}
		ix.Entries = append(ix.Entries, entry)
		if line.XRef != "" {
			ix.xrefs[line.XRef] = entry
		}
	}

	r.index = ix
	r.logger.Debug("indexed records", "records", len(ix.Entries), "xrefs", len(ix.xrefs))

	if len(ix.Entries) > 0 && ix.Entries[0].Tag == "HEAD" {
		r.indexing = true
		header, err := r.ReadRecord(ix.Entries[0].Offset)
		r.indexing = false
		if err != nil {
			r.index = nil
			return nil, err
		}
		r.header = header
		if source, ok := header.SubTagValue("SOUR", nil); ok {
			r.dialect = dialectFromSource(source)
		}
	}
	return ix, nil
}

// Header returns the HEAD record, or nil when the file does not start
// with one.
func (r *Reader) Header() (*Record, error) {
	if _, err := r.Index(); err != nil {
		return nil, err
	}
	return r.header, nil
}

// Dialect returns the dialect named by HEAD/SOUR.
func (r *Reader) Dialect() (Dialect, error) {
	if _, err := r.Index(); err != nil {
		return DialectDefault, err
	}
	return r.dialect, nil
}

// ReadRecord assembles the record starting at offset together with all of
// its sub-records. It returns nil, nil for offsets at or past the end of
// the stream and a *ParserError when offset is not at a line start.
func (r *Reader) ReadRecord(offset int64) (*Record, error) {
	if offset >= r.size {
		return nil, nil
	}
	if !r.indexing {
		if _, err := r.Index(); err != nil {
			return nil, err
		}
	}
	atStart, err := r.atLineStart(offset)
	if err != nil {
		return nil, err
	}
	if !atStart {
		return nil, &ParserError{Offset: offset, Message: "offset is not the start of a line"}
	}

	stream := r.Lines(offset)
	var asm *assembler
	root := -1
	for {
		line, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if asm == nil {
			root = line.Level
			dialect := r.dialect
			if r.header == nil || (line.Level == 0 && line.Tag == "HEAD") {
				dialect = DialectDefault
			}
			asm = newAssembler(dialect, r.decode)
		} else if line.Level <= root {
			break
		}
		if err := asm.add(line); err != nil {
			return nil, err
		}
	}
	if asm == nil {
		return nil, nil
	}
	return asm.finish(root)
}

func (r *Reader) decode(raw []byte) (string, error) {
	return decodeText(r.lines.Codec, r.lines.Name, r.policy, raw)
}

// atLineStart reports whether offset begins a line: it is the first byte
// after the byte order mark or follows a line terminator that is not the
// CR of a CRLF pair.
func (r *Reader) atLineStart(offset int64) (bool, error) {
	if offset == r.lines.BOMSize {
		return true, nil
	}
	if offset < r.lines.BOMSize {
		return false, nil
	}
	if _, err := r.src.Seek(offset-1, io.SeekStart); err != nil {
		return false, fmt.Errorf("seek to %d: %w", offset-1, err)
	}
	pair := make([]byte, 2)
	if _, err := io.ReadFull(r.src, pair); err != nil {
		return false, fmt.Errorf("read at %d: %w", offset-1, err)
	}
	switch pair[0] {
	case '\n':
		return true, nil
	case '\r':
		return pair[1] != '\n', nil
	default:
		return false, nil
	}
}

// Records iterates over level-0 records in file order, assembling each one
// afresh. An empty tag selects every record. Iteration stops after the
// first error.
func (r *Reader) Records(tag string) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		ix, err := r.Index()
		if err != nil {
			yield(nil, err)
			return
		}
		for _, entry := range ix.Entries {
			if tag != "" && entry.Tag != tag {
				continue
			}
			rec, err := r.ReadRecord(entry.Offset)
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Resolve returns the level-0 record with the given xref, or nil when the
// reference is dangling. Each call assembles the record again; use a
// Resolver to share results.
func (r *Reader) Resolve(ref string) (*Record, error) {
	ix, err := r.Index()
	if err != nil {
		return nil, err
	}
	entry, ok := ix.Lookup(ref)
	if !ok {
		return nil, nil
	}
	return r.ReadRecord(entry.Offset)
}
