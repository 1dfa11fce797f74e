package gedcom_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gedkit/pkg/gedcom"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func openString(t *testing.T, data string) *gedcom.Reader {
	t.Helper()

	reader, err := gedcom.NewReader(bytes.NewReader([]byte(data)), gedcom.Options{Logger: quietLogger()})
	require.NoError(t, err)
	return reader
}

// familyData is a small UTF-8 file with one nuclear family, a dangling
// family link and a note spread over continuation lines.
const familyData = "0 HEAD\n" +
	"1 SOUR TEST\n" +
	"1 CHAR UTF-8\n" +
	"0 @I1@ INDI\n" +
	"1 NAME John /Smith/\n" +
	"1 SEX M\n" +
	"1 BIRT\n" +
	"2 DATE 2 FEB 1920\n" +
	"2 PLAC Springfield\n" +
	"1 FAMC @F1@\n" +
	"0 @I2@ INDI\n" +
	"1 NAME Mary /Jones/\n" +
	"1 SEX F\n" +
	"1 FAMS @F1@\n" +
	"0 @I3@ INDI\n" +
	"1 NAME Robert /Smith/\n" +
	"1 SEX M\n" +
	"1 FAMS @F1@\n" +
	"0 @I4@ INDI\n" +
	"1 NAME Orphan\n" +
	"1 FAMC @F9@\n" +
	"0 @F1@ FAM\n" +
	"1 HUSB @I3@\n" +
	"1 WIFE @I2@\n" +
	"1 CHIL @I1@\n" +
	"1 MARR\n" +
	"2 DATE ABT 1915\n" +
	"0 @N1@ NOTE First line\n" +
	"1 CONT second line\n" +
	"1 CONC  continued\n" +
	"0 TRLR\n"
