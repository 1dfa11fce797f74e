package gedcom_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gedkit/pkg/gedcom"
)

func collectLines(t *testing.T, stream *gedcom.LineStream) ([]gedcom.Line, error) {
	t.Helper()

	var lines []gedcom.Line
	for {
		line, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
}

func TestLineStream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  string
		start int64
		want  []gedcom.Line
	}{
		{
			name:  "simple content",
			data:  "0 HEAD\n1 CHAR ASCII\n1 SOUR PIF PAF\n0 @i1@ INDI\n0 TRLR",
			start: 0,
			want: []gedcom.Line{
				{Level: 0, Tag: "HEAD", Offset: 0},
				{Level: 1, Tag: "CHAR", Value: []byte("ASCII"), Offset: 7},
				{Level: 1, Tag: "SOUR", Value: []byte("PIF PAF"), Offset: 20},
				{Level: 0, XRef: "@i1@", Tag: "INDI", Offset: 35},
				{Level: 0, Tag: "TRLR", Offset: 47},
			},
		},
		{
			name:  "raw utf-8 value",
			data:  "0 HEAD\n1 CHAR UTF-8\n0 OK \xc2\xb5",
			start: 0,
			want: []gedcom.Line{
				{Level: 0, Tag: "HEAD", Offset: 0},
				{Level: 1, Tag: "CHAR", Value: []byte("UTF-8"), Offset: 7},
				{Level: 0, Tag: "OK", Value: []byte("\xc2\xb5"), Offset: 20},
			},
		},
		{
			name:  "bom and crlf",
			data:  "\xef\xbb\xbf0 HEAD\r\n1 CHAR UTF-8\r\n0 OK \xc2\xb5",
			start: 3,
			want: []gedcom.Line{
				{Level: 0, Tag: "HEAD", Offset: 3},
				{Level: 1, Tag: "CHAR", Value: []byte("UTF-8"), Offset: 11},
				{Level: 0, Tag: "OK", Value: []byte("\xc2\xb5"), Offset: 25},
			},
		},
		{
			name:  "cr terminators and indentation",
			data:  "0 HEAD\r  1 CHAR ASCII\r0 TRLR\r",
			start: 0,
			want: []gedcom.Line{
				{Level: 0, Tag: "HEAD", Offset: 0},
				{Level: 1, Tag: "CHAR", Value: []byte("ASCII"), Offset: 7},
				{Level: 0, Tag: "TRLR", Offset: 22},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reader := openString(t, tt.data)
			lines, err := collectLines(t, reader.Lines(tt.start))
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestLineStreamSyntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		line int
		text string
	}{
		{"bad tag", "0 HEAD\n1 CHAR ASCII\n1 SO@UR PIF PAF", 3, "1 SO@UR PIF PAF"},
		{"bad xref", "0 HEAD\n1 CHAR ASCII\n1 @!ref@ SOUR PIF PAF", 3, "1 @!ref@ SOUR PIF PAF"},
		{"bad level", "0 HEAD\n1 CHAR ASCII\nX SOUR PIF PAF", 3, "X SOUR PIF PAF"},
		{"blank line", "0 HEAD\n1 CHAR ASCII\n\n0 TRLR", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reader := openString(t, tt.data)
			stream := reader.Lines(0)
			_, err := collectLines(t, stream)

			var parseErr *gedcom.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Equal(t, tt.text, parseErr.Text)

			// The stream stays on the offending line.
			_, again := stream.Next()
			require.ErrorAs(t, again, &parseErr)
			assert.Equal(t, tt.line, parseErr.Line)
		})
	}
}

func TestLineStreamIntegrity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		kind gedcom.IntegrityKind
		line int
	}{
		{"level jump", "0 HEAD\n1 CHAR ASCII\n0 INDI\n2 NAME X\n", gedcom.Nesting, 4},
		{"continuation too deep", "0 HEAD\n1 CHAR ASCII\n0 NOTE A\n1 CONC B\n2 CONC C\n", gedcom.Continuation, 5},
		{"continuation at sibling level", "0 HEAD\n1 CHAR ASCII\n0 NOTE A\n1 SOUR X\n1 CONC B\n", gedcom.Continuation, 5},
		{"continuation under level zero", "0 HEAD\n1 CHAR ASCII\n0 NOTE A\n0 CONT B\n", gedcom.Continuation, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reader := openString(t, tt.data)
			_, err := collectLines(t, reader.Lines(0))

			var integrity *gedcom.IntegrityError
			require.ErrorAs(t, err, &integrity)
			assert.Equal(t, tt.kind, integrity.Kind)
			assert.Equal(t, tt.line, integrity.Line)
			assert.Contains(t, err.Error(), "Structural integrity")
		})
	}
}

func TestLineStreamContinuationChain(t *testing.T) {
	t.Parallel()

	reader := openString(t, "0 HEAD\n1 CHAR ASCII\n0 NOTE A\n1 CONC B\n1 CONT C\n1 SOUR S\n2 CONC D\n0 TRLR\n")
	lines, err := collectLines(t, reader.Lines(0))
	require.NoError(t, err)
	assert.Len(t, lines, 8)
}
