package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gedkit/internal/logging"
	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// ErrRecordNotFound is returned when --xref names no record.
var ErrRecordNotFound = errors.New("record not found")

type recordsFlags struct {
	tag    string
	xref   string
	offset int64
}

func newRecordsCommand(global *globalFlags) *cobra.Command {
	flags := &recordsFlags{offset: -1}

	cmd := &cobra.Command{
		Use:   "records FILE",
		Short: "List level-0 records or show one record tree",
		Long: `Without flags, list every level-0 record with its tag, reference and
byte offset. --tag limits the listing to one record type.

--xref or --offset print a single record with all of its sub-records,
continuation lines already joined.

Examples:
  gedkit records family.ged --tag NOTE
  gedkit records family.ged --xref I1
  gedkit records family.ged --offset 1024 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.tag, "tag", "", "list only records with this tag")
	cmd.Flags().StringVar(&flags.xref, "xref", "", "show the record with this reference, e.g. @I1@ or I1")
	cmd.Flags().Int64Var(&flags.offset, "offset", -1, "show the record starting at this byte offset")
	cmd.MarkFlagsMutuallyExclusive("xref", "offset", "tag")

	return cmd
}

func runRecords(cmd *cobra.Command, path string, global *globalFlags, flags *recordsFlags) (err error) {
	s, err := global.newSession(cmd, global.cliConfig(cmd))
	if err != nil {
		return err
	}
	rep, err := s.reporter()
	if err != nil {
		return err
	}

	reader, err := s.open(path)
	if err != nil {
		return err
	}
	defer closeReader(reader, &err)

	switch {
	case flags.xref != "":
		ref := normalizeXRef(flags.xref)
		rec, err := reader.Resolve(ref)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: %s", ErrRecordNotFound, ref)
		}
		return rep.Record(s.ctx, rec)

	case flags.offset >= 0:
		rec, err := reader.ReadRecord(flags.offset)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: offset %d is past the end of the file", ErrRecordNotFound, flags.offset)
		}
		return rep.Record(s.ctx, rec)

	default:
		index, err := reader.Index()
		if err != nil {
			return err
		}
		entries := index.Entries
		if flags.tag != "" {
			tag := strings.ToUpper(flags.tag)
			entries = make([]gedcom.Entry, 0, len(index.Entries))
			for _, e := range index.Entries {
				if e.Tag == tag {
					entries = append(entries, e)
				}
			}
		}
		s.logger.Debug("listing records", logging.FieldTag, flags.tag, logging.FieldRecords, len(entries))
		return rep.Records(s.ctx, entries)
	}
}

// normalizeXRef accepts "I1" as well as "@I1@".
func normalizeXRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "@") && strings.HasSuffix(ref, "@") && len(ref) > 1 {
		return ref
	}
	return "@" + strings.Trim(ref, "@") + "@"
}
