package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gedkit/internal/logging"
	"github.com/yaklabco/gedkit/pkg/family"
	"github.com/yaklabco/gedkit/pkg/gedcom"
	"github.com/yaklabco/gedkit/pkg/report"
)

type listFlags struct {
	sort      string
	nameOrder string
}

// listing renders one view of a loaded tree.
type listing func(rep report.Reporter, s *session, tree *family.Tree, key family.SortKey, order gedcom.NameOrder) error

func newPeopleCommand(global *globalFlags) *cobra.Command {
	return newListCommand(global, "people FILE", "List individuals",
		`List every individual with sex, birth, death and parents.

Examples:
  gedkit people family.ged
  gedkit people family.ged --sort birth
  gedkit people family.ged --sort name --name-order given_surname --format table`,
		func(rep report.Reporter, s *session, tree *family.Tree, key family.SortKey, order gedcom.NameOrder) error {
			family.SortIndividuals(tree.Individuals, key, order)
			return rep.Individuals(s.ctx, tree.Individuals)
		})
}

func newFamiliesCommand(global *globalFlags) *cobra.Command {
	return newListCommand(global, "families FILE", "List families",
		`List every family with its spouses, marriage and children.

With --sort name families are ordered by their spouse names; --sort birth
orders them by marriage date.`,
		func(rep report.Reporter, s *session, tree *family.Tree, key family.SortKey, _ gedcom.NameOrder) error {
			family.SortFamilies(tree.Families, key)
			return rep.Families(s.ctx, tree.Families)
		})
}

func newEventsCommand(global *globalFlags) *cobra.Command {
	return newListCommand(global, "events FILE", "List dated events",
		`List the events of individuals and families with their formatted dates.

Examples:
  gedkit events family.ged --sort birth
  gedkit events family.ged --format json`,
		func(rep report.Reporter, s *session, tree *family.Tree, key family.SortKey, _ gedcom.NameOrder) error {
			family.SortEvents(tree.Events, key)
			return rep.Events(s.ctx, tree.Events)
		})
}

func newListCommand(global *globalFlags, use, short, long string, render listing) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], global, flags, render)
		},
	}

	cmd.Flags().StringVar(&flags.sort, "sort", "file", "order: file, name, birth")
	cmd.Flags().StringVar(&flags.nameOrder, "name-order", "",
		"name sort order: surname_given, given_surname, maiden_given, given_maiden")

	return cmd
}

func runList(cmd *cobra.Command, path string, global *globalFlags, flags *listFlags, render listing) (err error) {
	key, err := family.ParseSortKey(flags.sort)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	cli := global.cliConfig(cmd)
	if cmd.Flags().Changed("name-order") {
		cli.NameOrder = flags.nameOrder
	}
	s, err := global.newSession(cmd, cli)
	if err != nil {
		return err
	}
	order, err := gedcom.ParseNameOrder(s.cfg.NameOrder)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
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

	tree, err := family.Load(s.ctx, reader)
	if err != nil {
		return err
	}
	s.logger.Debug("loaded tree",
		logging.FieldPath, path,
		logging.FieldIndividuals, len(tree.Individuals),
		logging.FieldFamilies, len(tree.Families),
		logging.FieldEvents, len(tree.Events),
	)

	return render(rep, s, tree, key, order)
}
