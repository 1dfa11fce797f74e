package store

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gedkit/pkg/gedcom"
)

const exportData = "0 HEAD\n" +
	"1 SOUR MYHERITAGE\n" +
	"1 CHAR UTF-8\n" +
	"0 @I1@ INDI\n" +
	"1 NAME John /Smith/\n" +
	"1 SEX M\n" +
	"1 BIRT\n" +
	"2 DATE 2 FEB 1920\n" +
	"2 PLAC Springfield\n" +
	"1 DEAT\n" +
	"2 DATE sometime\n" +
	"1 FAMC @F1@\n" +
	"0 @I2@ INDI\n" +
	"1 NAME Mary /Jones/\n" +
	"1 SEX F\n" +
	"1 FAMS @F1@\n" +
	"0 @F1@ FAM\n" +
	"1 WIFE @I2@\n" +
	"1 CHIL @I1@\n" +
	"1 MARR\n" +
	"2 DATE BEF 1915\n" +
	"0 @N1@ NOTE shared\n" +
	"0 TRLR\n"

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "export.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestReader(t *testing.T, data string) *gedcom.Reader {
	t.Helper()

	reader, err := gedcom.NewReader(bytes.NewReader([]byte(data)), gedcom.Options{Logger: log.New(bytes.NewBuffer(nil))})
	require.NoError(t, err)
	return reader
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestOpenMigratesTwice(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())

	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestExportFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	run, err := s.ExportFile(ctx, newTestReader(t, exportData), "smith.ged")
	require.NoError(t, err)

	_, err = ulid.ParseStrict(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "smith.ged", run.Source)
	assert.Equal(t, gedcom.CodecUTF8, run.Codec)
	assert.Equal(t, string(gedcom.DialectMyHeritage), run.Dialect)
	assert.Equal(t, 6, run.Records)
	assert.Equal(t, 2, run.Individuals)
	assert.Equal(t, 1, run.Families)
	assert.Equal(t, 3, run.Events)

	assert.Equal(t, 6, count(t, s.db, `SELECT COUNT(*) FROM records WHERE run_id = ?`, run.ID))
	assert.Equal(t, 2, count(t, s.db, `SELECT COUNT(*) FROM records WHERE run_id = ? AND xref IS NULL`, run.ID))

	var (
		name, surname, birth string
		birthJD              float64
		deathJD              sql.NullFloat64
		father               sql.NullString
		mother               string
	)
	require.NoError(t, s.db.QueryRow(
		`SELECT name, surname, birth, birth_jd, death_jd, father_xref, mother_xref
		 FROM individuals WHERE run_id = ? AND xref = ?`, run.ID, "@I1@").
		Scan(&name, &surname, &birth, &birthJD, &deathJD, &father, &mother))
	assert.Equal(t, "John Smith", name)
	assert.Equal(t, "Smith", surname)
	assert.Equal(t, "2 FEB 1920", birth)
	assert.InDelta(t, 2422356.5, birthJD, 0)
	assert.False(t, deathJD.Valid, "phrases have no julian day")
	assert.False(t, father.Valid)
	assert.Equal(t, "@I2@", mother)

	var (
		husband    sql.NullString
		wife       string
		marriageJD sql.NullFloat64
	)
	require.NoError(t, s.db.QueryRow(
		`SELECT husband_xref, wife_xref, marriage_jd FROM families WHERE run_id = ? AND xref = ?`, run.ID, "@F1@").
		Scan(&husband, &wife, &marriageJD))
	assert.False(t, husband.Valid)
	assert.Equal(t, "@I2@", wife)
	assert.True(t, marriageJD.Valid, "BEF keeps its only bound")

	assert.Equal(t, 1, count(t, s.db,
		`SELECT COUNT(*) FROM family_children WHERE run_id = ? AND family_xref = '@F1@' AND child_xref = '@I1@'`, run.ID))
	assert.Equal(t, 2, count(t, s.db,
		`SELECT COUNT(*) FROM events WHERE run_id = ? AND owner_tag = 'INDI'`, run.ID))
}

func TestExportRecordsWithoutXRef(t *testing.T) {
	t.Parallel()

	data := "0 HEAD\n1 CHAR ASCII\n" +
		"0 INDI\n1 NAME A /B/\n1 BIRT\n2 DATE 1900\n" +
		"0 INDI\n1 NAME C /D/\n" +
		"0 @I1@ INDI\n1 NAME E /F/\n" +
		"0 @I1@ INDI\n1 NAME G /H/\n" +
		"0 FAM\n1 CHIL @I1@\n" +
		"0 FAM\n1 MARR\n2 DATE 1920\n" +
		"0 TRLR\n"

	ctx := context.Background()
	s := newTestStore(t)

	run, err := s.ExportFile(ctx, newTestReader(t, data), "loose.ged")
	require.NoError(t, err)
	assert.Equal(t, 4, run.Individuals)
	assert.Equal(t, 2, run.Families)

	assert.Equal(t, 2, count(t, s.db,
		`SELECT COUNT(*) FROM individuals WHERE run_id = ? AND xref IS NULL`, run.ID))
	assert.Equal(t, 2, count(t, s.db,
		`SELECT COUNT(*) FROM individuals WHERE run_id = ? AND xref = '@I1@'`, run.ID))
	assert.Equal(t, 2, count(t, s.db,
		`SELECT COUNT(*) FROM families WHERE run_id = ? AND xref IS NULL`, run.ID))
	assert.Equal(t, 1, count(t, s.db,
		`SELECT COUNT(*) FROM family_children WHERE run_id = ? AND family_xref IS NULL`, run.ID))
	assert.Equal(t, 1, count(t, s.db,
		`SELECT COUNT(*) FROM events WHERE run_id = ? AND owner_tag = 'INDI' AND owner_xref IS NULL`, run.ID))
}

func TestRunsNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	first, err := s.ExportFile(ctx, newTestReader(t, exportData), "a.ged")
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	second, err := s.ExportFile(ctx, newTestReader(t, exportData), "b.ged")
	require.NoError(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, "b.ged", runs[0].Source)
	assert.True(t, runs[1].CreatedAt.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, runs[0].Individuals)
	assert.Equal(t, 3, runs[0].Events)
}

func TestDeleteRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	run, err := s.ExportFile(ctx, newTestReader(t, exportData), "smith.ged")
	require.NoError(t, err)

	require.NoError(t, s.DeleteRun(ctx, run.ID))
	assert.Zero(t, count(t, s.db, `SELECT COUNT(*) FROM individuals`))
	assert.Zero(t, count(t, s.db, `SELECT COUNT(*) FROM events`))

	err = s.DeleteRun(ctx, run.ID)
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestExportFailureWritesNothing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	broken := "0 HEAD\n1 CHAR UTF-8\n0 @I1@ INDI\n2 NAME Bad\n0 TRLR\n"

	_, err := s.ExportFile(context.Background(), newTestReader(t, broken), "broken.ged")
	require.Error(t, err)
	assert.Zero(t, count(t, s.db, `SELECT COUNT(*) FROM runs`))
}

func TestExportCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestStore(t)
	_, err := s.ExportFile(ctx, newTestReader(t, exportData), "smith.ged")
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, count(t, s.db, `SELECT COUNT(*) FROM runs`))
}
