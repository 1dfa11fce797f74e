package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gedkit/internal/logging"
	"github.com/yaklabco/gedkit/internal/ui/pretty"
	"github.com/yaklabco/gedkit/pkg/config"
	"github.com/yaklabco/gedkit/pkg/store"
)

// defaultDatabase is used when neither --db nor export.database is set.
const defaultDatabase = "gedkit.db"

type exportFlags struct {
	database string
	list     bool
	remove   string
}

func newExportCommand(global *globalFlags) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export a GEDCOM file into a SQLite database",
		Long: `Export the records, individuals, families and events of a GEDCOM file
into a SQLite database. Each export is stored as a run with its own id, so
one database can hold several files or several versions of one file.

Examples:
  gedkit export family.ged --db family.db
  gedkit export --list --db family.db
  gedkit export --delete 01HZX3Q4M5N6P7R8S9T0V1W2X3 --db family.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.database, "db", "", "database path (default: export.database or "+defaultDatabase+")")
	cmd.Flags().BoolVar(&flags.list, "list", false, "list the runs stored in the database")
	cmd.Flags().StringVar(&flags.remove, "delete", "", "delete the run with this id")
	cmd.MarkFlagsMutuallyExclusive("list", "delete")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, global *globalFlags, flags *exportFlags) (err error) {
	maintenance := flags.list || flags.remove != ""
	switch {
	case maintenance && len(args) > 0:
		return fmt.Errorf("%w: --list and --delete take no FILE", ErrUsage)
	case !maintenance && len(args) == 0:
		return fmt.Errorf("%w: export needs a FILE", ErrUsage)
	}

	cli := global.cliConfig(cmd)
	cli.Export.Database = flags.database
	s, err := global.newSession(cmd, cli)
	if err != nil {
		return err
	}

	dbPath := s.cfg.Export.Database
	if dbPath == "" {
		dbPath = defaultDatabase
	}
	db, err := store.Open(s.ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close database: %w", closeErr)
		}
	}()

	switch {
	case flags.list:
		runs, err := db.Runs(s.ctx)
		if err != nil {
			return err
		}
		return writeRuns(s, runs)

	case flags.remove != "":
		if err := db.DeleteRun(s.ctx, flags.remove); err != nil {
			return err
		}
		s.logger.Info("deleted run", logging.FieldRun, flags.remove, logging.FieldDatabase, dbPath)
		return nil
	}

	reader, err := s.open(args[0])
	if err != nil {
		return err
	}
	defer closeReader(reader, &err)

	run, err := db.ExportFile(s.ctx, reader, filepath.Base(args[0]))
	if err != nil {
		return err
	}
	return writeRun(s, run, dbPath)
}

func writeRun(s *session, run *store.Run, dbPath string) error {
	if s.outputFormat() == config.FormatJSON {
		return writeJSON(s.out, s.cfg.Output.Compact, map[string]any{"run": run, "database": dbPath})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(string(s.cfg.Output.Color), s.out))
	summary := styles.FormatSummary(
		pretty.Count{N: run.Individuals, Singular: "individual", Plural: "individuals"},
		pretty.Count{N: run.Families, Singular: "family", Plural: "families"},
		pretty.Count{N: run.Events, Singular: "event", Plural: "events"},
	)
	_, err := fmt.Fprintf(s.out, "%s %s to %s (run %s)\n",
		styles.Success.Render("Exported"), summary, dbPath, styles.XRef.Render(run.ID))
	return err
}

func writeRuns(s *session, runs []store.Run) error {
	if s.outputFormat() == config.FormatJSON {
		if runs == nil {
			runs = []store.Run{}
		}
		return writeJSON(s.out, s.cfg.Output.Compact, map[string]any{"runs": runs})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(string(s.cfg.Output.Color), s.out))
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.Source,
			run.CreatedAt.Format("2006-01-02 15:04"),
			strconv.Itoa(run.Individuals),
			strconv.Itoa(run.Families),
			strconv.Itoa(run.Events),
		})
	}
	table := pretty.NewTableFormatter(styles, 0).Format(
		[]string{"RUN", "SOURCE", "CREATED", "INDIVIDUALS", "FAMILIES", "EVENTS"}, rows)
	_, err := fmt.Fprint(s.out, table,
		" "+styles.FormatSummary(pretty.Count{N: len(runs), Singular: "run", Plural: "runs"})+"\n")
	return err
}

func writeJSON(w io.Writer, compact bool, v any) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
