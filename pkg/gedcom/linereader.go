package gedcom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// lineReader splits a byte stream into lines terminated by LF, CR or CRLF
// and tracks the byte offset of every line start.
type lineReader struct {
	src io.Reader
	buf *bufio.Reader
	pos int64
}

func newLineReader(src io.Reader, pos int64) *lineReader {
	return &lineReader{src: src, buf: bufio.NewReader(src), pos: pos}
}

// next returns the next line without its terminator and the offset of its
// first byte. It returns io.EOF only when no bytes remain.
func (lr *lineReader) next() ([]byte, int64, error) {
	start := lr.pos
	var line []byte

	for {
		b, err := lr.buf.ReadByte()
		if errors.Is(err, io.EOF) {
			if len(line) == 0 && lr.pos == start {
				return nil, start, io.EOF
			}
			return line, start, nil
		}
		if err != nil {
			return nil, start, err
		}
		lr.pos++

		switch b {
		case '\n':
			return line, start, nil
		case '\r':
			peek, err := lr.buf.Peek(1)
			if err == nil && peek[0] == '\n' {
				_, _ = lr.buf.ReadByte()
				lr.pos++
			}
			return line, start, nil
		default:
			line = append(line, b)
		}
	}
}

// reset repositions the reader; the source must implement io.Seeker.
func (lr *lineReader) reset(offset int64) error {
	seeker, ok := lr.src.(io.Seeker)
	if !ok {
		return errors.New("line source does not support seeking")
	}
	if _, err := seeker.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek to %d: %w", offset, err)
	}
	lr.buf.Reset(lr.src)
	lr.pos = offset
	return nil
}

// LineNumber returns the 1-based number of the line containing offset by
// re-scanning the stream from the beginning. CR, LF and CRLF all end a
// line. The stream position is restored before returning. It is meant for
// error messages and is linear in the file size.
func LineNumber(r io.ReadSeeker, offset int64) int {
	saved, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	defer func() {
		_, _ = r.Seek(saved, io.SeekStart)
	}()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0
	}

	lineno := 1
	lr := newLineReader(r, 0)
	for {
		if _, _, err := lr.next(); err != nil {
			break
		}
		if lr.pos > offset {
			break
		}
		lineno++
	}
	return lineno
}
