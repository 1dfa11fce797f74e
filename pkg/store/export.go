package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yaklabco/gedkit/internal/logging"
	"github.com/yaklabco/gedkit/pkg/family"
	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// Run describes one export.
type Run struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Codec       string    `json:"codec"`
	Dialect     string    `json:"dialect"`
	CreatedAt   time.Time `json:"created_at"`
	Records     int       `json:"records"`
	Individuals int       `json:"individuals"`
	Families    int       `json:"families"`
	Events      int       `json:"events"`
}

// ExportFile reads every record of reader and stores it as a new run.
// source names the file in the runs table. Nothing is written when any
// step fails.
func (s *Store) ExportFile(ctx context.Context, reader *gedcom.Reader, source string) (*Run, error) {
	logger := logging.FromContext(ctx)

	index, err := reader.Index()
	if err != nil {
		return nil, fmt.Errorf("index records: %w", err)
	}
	dialect, err := reader.Dialect()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	tree, err := family.Load(ctx, reader)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:          s.newID(),
		Source:      source,
		Codec:       reader.Encoding().Name,
		Dialect:     string(dialect),
		CreatedAt:   s.now().UTC().Truncate(time.Second),
		Records:     len(index.Entries),
		Individuals: len(tree.Individuals),
		Families:    len(tree.Families),
		Events:      len(tree.Events),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, codec, dialect, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Codec, run.Dialect, run.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	steps := []func(context.Context, *sql.Tx, string) error{
		func(ctx context.Context, tx *sql.Tx, id string) error { return insertRecords(ctx, tx, id, index.Entries) },
		func(ctx context.Context, tx *sql.Tx, id string) error { return insertIndividuals(ctx, tx, id, tree.Individuals) },
		func(ctx context.Context, tx *sql.Tx, id string) error { return insertFamilies(ctx, tx, id, tree.Families) },
		func(ctx context.Context, tx *sql.Tx, id string) error { return insertEvents(ctx, tx, id, tree.Events) },
	}
	for _, step := range steps {
		if err := step(ctx, tx, run.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit export: %w", err)
	}

	logger.Info("Exported file",
		logging.FieldPath, source,
		logging.FieldRun, run.ID,
		logging.FieldRecords, run.Records,
		logging.FieldIndividuals, run.Individuals,
		logging.FieldFamilies, run.Families,
		logging.FieldEvents, run.Events,
	)
	return run, nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, runID string, entries []gedcom.Entry) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (run_id, seq, file_offset, tag, xref) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare records: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, runID, i, e.Offset, e.Tag, nullString(e.XRef)); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	return nil
}

func insertIndividuals(ctx context.Context, tx *sql.Tx, runID string, people []family.Individual) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO individuals (run_id, xref, name, given, surname, maiden, sex,
			birth, birth_jd, birth_place, death, death_jd, death_place,
			father_xref, mother_xref, file_offset)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare individuals: %w", err)
	}
	defer stmt.Close()

	for _, p := range people {
		if _, err := stmt.ExecContext(ctx, runID, nullString(p.XRef), p.Name,
			nullString(p.Given), nullString(p.Surname), nullString(p.Maiden), p.Sex,
			dateText(p.Birth), dateJD(p.Birth), nullString(p.BirthPlace),
			dateText(p.Death), dateJD(p.Death), nullString(p.DeathPlace),
			refXRef(p.Father), refXRef(p.Mother), p.Offset); err != nil {
			return fmt.Errorf("insert individual at offset %d: %w", p.Offset, err)
		}
	}
	return nil
}

func insertFamilies(ctx context.Context, tx *sql.Tx, runID string, families []family.Family) error {
	famStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO families (run_id, xref, husband_xref, wife_xref,
			marriage, marriage_jd, marriage_place, file_offset)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare families: %w", err)
	}
	defer famStmt.Close()

	childStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO family_children (run_id, family_offset, family_xref, seq, child_xref) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare family children: %w", err)
	}
	defer childStmt.Close()

	for _, f := range families {
		if _, err := famStmt.ExecContext(ctx, runID, nullString(f.XRef),
			refXRef(f.Husband), refXRef(f.Wife),
			dateText(f.Marriage), dateJD(f.Marriage), nullString(f.MarriagePlace),
			f.Offset); err != nil {
			return fmt.Errorf("insert family at offset %d: %w", f.Offset, err)
		}
		for i, c := range f.Children {
			if _, err := childStmt.ExecContext(ctx, runID, f.Offset, nullString(f.XRef), i, nullString(c.XRef)); err != nil {
				return fmt.Errorf("insert child of family at offset %d: %w", f.Offset, err)
			}
		}
	}
	return nil
}

func insertEvents(ctx context.Context, tx *sql.Tx, runID string, events []family.Event) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (run_id, seq, owner_xref, owner_tag, tag, label, type, date, date_jd, place)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare events: %w", err)
	}
	defer stmt.Close()

	for i, e := range events {
		if _, err := stmt.ExecContext(ctx, runID, i, nullString(e.Owner.XRef), e.OwnerTag, e.Tag, e.Label,
			nullString(e.Type), dateText(e.Date), dateJD(e.Date), nullString(e.Place)); err != nil {
			return fmt.Errorf("insert event %d: %w", i, err)
		}
	}
	return nil
}

// Runs lists the stored runs, newest first, with their row counts.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.source, r.codec, r.dialect, r.created_at,
			(SELECT COUNT(*) FROM records WHERE run_id = r.id),
			(SELECT COUNT(*) FROM individuals WHERE run_id = r.id),
			(SELECT COUNT(*) FROM families WHERE run_id = r.id),
			(SELECT COUNT(*) FROM events WHERE run_id = r.id)
		FROM runs r ORDER BY r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			created string
		)
		if err := rows.Scan(&run.ID, &run.Source, &run.Codec, &run.Dialect, &created,
			&run.Records, &run.Individuals, &run.Families, &run.Events); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("run %s: bad timestamp %q: %w", run.ID, created, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ErrRunNotFound is returned by DeleteRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// DeleteRun removes a run and all rows exported with it.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func dateText(d *family.Date) any {
	if d == nil {
		return nil
	}
	return nullString(d.Text)
}

func dateJD(d *family.Date) any {
	if d == nil || d.JD == 0 {
		return nil
	}
	return d.JD
}

func refXRef(ref *family.PersonRef) any {
	if ref == nil {
		return nil
	}
	return nullString(ref.XRef)
}
