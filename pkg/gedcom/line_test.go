package gedcom_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gedkit/pkg/gedcom"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  gedcom.Line
	}{
		{
			name:  "level and tag",
			input: "0 HEAD",
			want:  gedcom.Line{Level: 0, Tag: "HEAD"},
		},
		{
			name:  "xref",
			input: "0 @I1@ INDI",
			want:  gedcom.Line{Level: 0, XRef: "@I1@", Tag: "INDI"},
		},
		{
			name:  "value with spaces",
			input: "1 SOUR PIF PAF",
			want:  gedcom.Line{Level: 1, Tag: "SOUR", Value: []byte("PIF PAF")},
		},
		{
			name:  "value keeps leading space after separator",
			input: "2 CONC  D",
			want:  gedcom.Line{Level: 2, Tag: "CONC", Value: []byte(" D")},
		},
		{
			name:  "empty value",
			input: "1 NOTE ",
			want:  gedcom.Line{Level: 1, Tag: "NOTE", Value: []byte{}},
		},
		{
			name:  "underscore tag and lower case",
			input: "2 _marnm Smith",
			want:  gedcom.Line{Level: 2, Tag: "_marnm", Value: []byte("Smith")},
		},
		{
			name:  "multi digit level",
			input: "12 TAG x",
			want:  gedcom.Line{Level: 12, Tag: "TAG", Value: []byte("x")},
		},
		{
			name:  "raw bytes in value",
			input: "0 OK \xc2\xb5",
			want:  gedcom.Line{Level: 0, Tag: "OK", Value: []byte("\xc2\xb5")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := gedcom.ParseLine([]byte(tt.input), 42)
			require.NoError(t, err)
			tt.want.Offset = 42
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"X SOUR PIF PAF",
		"1 SO@UR PIF PAF",
		"1 @!ref@ SOUR PIF PAF",
		"1",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			_, err := gedcom.ParseLine([]byte(input), 7)
			var parseErr *gedcom.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, int64(7), parseErr.Offset)
			assert.Equal(t, input, parseErr.Text)
		})
	}
}

func TestLineString(t *testing.T) {
	t.Parallel()

	line := gedcom.Line{Level: 1, XRef: "@S1@", Tag: "SOUR", Value: []byte("PIF")}
	assert.Equal(t, "1 @S1@ SOUR PIF", line.String())
	assert.Equal(t, "0 TRLR", gedcom.Line{Tag: "TRLR"}.String())
}

func TestLineNumber(t *testing.T) {
	t.Parallel()

	src := bytes.NewReader([]byte("line1\nline2\nline3\nline4\nline5\n"))

	tests := []struct {
		offset int64
		want   int
	}{
		{0, 1},
		{3, 1},
		{6, 2},
		{12, 3},
		{18, 4},
		{24, 5},
		{30, 6},
	}

	for _, tt := range tests {
		_, err := src.Seek(tt.offset, io.SeekStart)
		require.NoError(t, err)

		assert.Equal(t, tt.want, gedcom.LineNumber(src, tt.offset), "offset %d", tt.offset)

		pos, err := src.Seek(0, io.SeekCurrent)
		require.NoError(t, err)
		assert.Equal(t, tt.offset, pos, "position restored")
	}
}

func TestLineNumberTerminators(t *testing.T) {
	t.Parallel()

	src := bytes.NewReader([]byte("a\r\nb\rc\nd"))
	assert.Equal(t, 1, gedcom.LineNumber(src, 0))
	assert.Equal(t, 2, gedcom.LineNumber(src, 3))
	assert.Equal(t, 3, gedcom.LineNumber(src, 5))
	assert.Equal(t, 4, gedcom.LineNumber(src, 7))
}
