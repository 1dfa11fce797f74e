package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gedkit/pkg/report"
)

func newDateCommand(global *globalFlags) *cobra.Command {
	var sortByKey bool

	cmd := &cobra.Command{
		Use:   "date TEXT...",
		Short: "Parse GEDCOM date values",
		Long: `Parse each argument as a GEDCOM date value and print its kind, the
normalized text and the Julian Days bounding it.

Calendar escapes select the calendar of a date; dates without one are
Gregorian. Arguments that fail to parse are reported in the VALUE column
and make the command exit with a data error.

Examples:
  gedkit date "ABT 1850" "BET 1900 AND 1910"
  gedkit date "@#DHEBREW@ 15 NSN 5782" "@#DFRENCH R@ 1 VEND 1"
  gedkit date --sort "AFT 1900" "BEF 1850" "1870"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDate(cmd, args, global, sortByKey)
		},
	}

	cmd.Flags().BoolVar(&sortByKey, "sort", false, "order values chronologically")

	return cmd
}

func runDate(cmd *cobra.Command, args []string, global *globalFlags, sortByKey bool) error {
	s, err := global.newSession(cmd, global.cliConfig(cmd))
	if err != nil {
		return err
	}
	rep, err := s.reporter()
	if err != nil {
		return err
	}

	results := make([]report.DateResult, 0, len(args))
	failed := false
	for _, arg := range args {
		result := report.NewDateResult(strings.Join(strings.Fields(arg), " "))
		if result.Error != "" {
			failed = true
			s.logger.Warn("invalid date value", "input", result.Input, "error", result.Error)
		}
		results = append(results, result)
	}

	if sortByKey {
		slices.SortStableFunc(results, func(a, b report.DateResult) int {
			// Failures sort last.
			switch {
			case a.Error != "" && b.Error != "":
				return 0
			case a.Error != "":
				return 1
			case b.Error != "":
				return -1
			}
			return a.Value().Compare(b.Value())
		})
	}

	if err := rep.Dates(s.ctx, results); err != nil {
		return err
	}
	if failed {
		return ErrInvalidDates
	}
	return nil
}
