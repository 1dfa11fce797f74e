package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gedkit/internal/logging"
	"github.com/yaklabco/gedkit/internal/ui/pretty"
	"github.com/yaklabco/gedkit/pkg/config"
	"github.com/yaklabco/gedkit/pkg/gedcom"
	"github.com/yaklabco/gedkit/pkg/runner"
)

// ErrCheckFailed is returned by check when a file could not be read, or
// with --strict when any file has issues. The report has already been
// printed.
var ErrCheckFailed = errors.New("check failed")

type checkFlags struct {
	exclude        []string
	extensions     []string
	jobs           int
	followSymlinks bool
	strict         bool
}

func newCheckCommand(global *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [PATH...]",
		Short: "Check that GEDCOM files can be read",
		Long: `Read every GEDCOM file under the given paths and report its character
set, dialect and record counts. Dates that cannot be parsed and pointers to
missing records are listed as issues.

Directories are searched recursively for .ged and .gedcom files; hidden
files and directories are skipped. The exit status is 65 when a file
cannot be read, or with --strict when any issue was found.

Examples:
  gedkit check
  gedkit check trees/ --exclude 'archive/**'
  gedkit check family.ged --strict --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns of paths to skip")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to check (default .ged,.gedcom)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "files read in parallel (default: jobs setting or one per CPU)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail when any file has issues")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, global *globalFlags, flags *checkFlags) error {
	cli := global.cliConfig(cmd)
	if cmd.Flags().Changed("jobs") {
		if flags.jobs < 0 {
			return fmt.Errorf("%w: --jobs must not be negative", ErrUsage)
		}
		cli.Jobs = flags.jobs
	}
	s, err := global.newSession(cmd, cli)
	if err != nil {
		return err
	}
	policy, err := gedcom.ParseDecodePolicy(s.cfg.DecodePolicy)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	workDir, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	result, err := runner.Run(s.ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     flags.extensions,
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           s.cfg.Jobs,
		Reader: gedcom.Options{
			Encoding:       s.cfg.Encoding,
			DecodePolicy:   policy,
			RequireCharset: s.cfg.RequiresCharset(),
			Logger:         s.logger,
		},
	})
	if errors.Is(err, runner.ErrBadPattern) {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if err != nil {
		return err
	}

	for _, file := range result.Files {
		if file.Error != nil {
			s.logger.Warn("cannot read file", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}
	s.logger.Debug("checked files",
		"discovered", result.Stats.FilesDiscovered,
		"errored", result.Stats.FilesErrored,
		logging.FieldRecords, result.Stats.Records,
	)

	if err := writeCheck(s, result, workDir); err != nil {
		return err
	}
	if result.HasFailures() || (flags.strict && result.HasIssues()) {
		return ErrCheckFailed
	}
	return nil
}

// checkedFile adds the error text that FileOutcome leaves out of JSON.
type checkedFile struct {
	runner.FileOutcome
	Error string `json:"error,omitempty"`
}

func writeCheck(s *session, result *runner.Result, workDir string) error {
	if s.outputFormat() == config.FormatJSON {
		files := make([]checkedFile, 0, len(result.Files))
		for _, file := range result.Files {
			entry := checkedFile{FileOutcome: file}
			if file.Error != nil {
				entry.Error = file.Error.Error()
			}
			files = append(files, entry)
		}
		return writeJSON(s.out, s.cfg.Output.Compact, map[string]any{"files": files, "stats": result.Stats})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(string(s.cfg.Output.Color), s.out))
	rows := make([][]string, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, []string{
			relPath(workDir, file.Path),
			file.Codec,
			file.Dialect,
			strconv.Itoa(file.Records),
			strconv.Itoa(file.Individuals),
			strconv.Itoa(file.Families),
			checkStatus(file),
		})
	}
	table := pretty.NewTableFormatter(styles, 0).Format(
		[]string{"FILE", "CODEC", "DIALECT", "RECORDS", "INDIVIDUALS", "FAMILIES", "STATUS"}, rows)
	if _, err := fmt.Fprint(s.out, table); err != nil {
		return err
	}

	for _, file := range result.Files {
		for _, issue := range file.Issues {
			if _, err := fmt.Fprintf(s.out, " %s:%d  %s %s  %s\n",
				relPath(workDir, file.Path), issue.Offset,
				styles.XRef.Render(issue.Record), styles.Tag.Render(issue.Tag),
				styles.Warning.Render(issue.Message)); err != nil {
				return err
			}
		}
	}

	summary := styles.FormatSummary(
		pretty.Count{N: result.Stats.FilesChecked, Singular: "file checked", Plural: "files checked"},
		pretty.Count{N: result.Stats.FilesErrored, Singular: "file unreadable", Plural: "files unreadable"},
		pretty.Count{N: result.Stats.DateErrors, Singular: "bad date", Plural: "bad dates"},
		pretty.Count{N: result.Stats.DanglingPointers, Singular: "dangling pointer", Plural: "dangling pointers"},
	)
	_, err := fmt.Fprintln(s.out, " "+summary)
	return err
}

func checkStatus(file runner.FileOutcome) string {
	switch {
	case file.Error != nil:
		return "unreadable"
	case len(file.Issues) == 1:
		return "1 issue"
	case len(file.Issues) > 1:
		return strconv.Itoa(len(file.Issues)) + " issues"
	default:
		return "ok"
	}
}

func relPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
