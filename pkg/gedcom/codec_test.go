package gedcom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gedkit/pkg/gedcom"
)

func TestLookupCodec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"ASCII", gedcom.CodecASCII, true},
		{"utf8", gedcom.CodecUTF8, true},
		{"UTF-8", gedcom.CodecUTF8, true},
		{"UNICODE", gedcom.CodecUTF16, true},
		{"utf_16_le", gedcom.CodecUTF16LE, true},
		{"ANSEL", gedcom.CodecANSEL, true},
		{"Windows 1251", gedcom.CodecCP1251, true},
		{"ISO-8859-1", gedcom.CodecLatin1, true},
		{" macintosh ", gedcom.CodecMacRoman, true},
		{"EBCDIC", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			enc, name, ok := gedcom.LookupCodec(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, name)
			if tt.ok {
				assert.NotNil(t, enc)
			} else {
				assert.Nil(t, enc)
			}
		})
	}
}

func TestParseDecodePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    gedcom.DecodePolicy
		wantErr bool
	}{
		{"", gedcom.DecodeStrict, false},
		{"strict", gedcom.DecodeStrict, false},
		{"REPLACE", gedcom.DecodeReplace, false},
		{"ignore", gedcom.DecodeIgnore, false},
		{"skip", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := gedcom.ParseDecodePolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, gedcom.DecodePolicy(tt.input).IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}
