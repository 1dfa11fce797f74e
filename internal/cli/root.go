// Package cli provides the Cobra command structure for gedkit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gedkit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	debug        bool
	configPath   string
	color        string
	format       string
	compact      bool
	encoding     string
	decodePolicy string
}

// NewRootCommand creates the root gedkit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gedkit",
		Short: "Read and query GEDCOM genealogy files",
		Long: `gedkit reads GEDCOM 5.5 genealogy files in any of the common character
encodings and lists the people, families and events they contain.

Dates in the Gregorian, Julian, Hebrew and French Republican calendars are
parsed into comparable values, so listings can be ordered chronologically.
Files can also be exported into a SQLite database for ad-hoc queries.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "path to config file")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	pf.StringVar(&flags.format, "format", "text", "output format: text, table, json, html")
	pf.BoolVar(&flags.compact, "compact", false, "write JSON without indentation")
	pf.StringVar(&flags.encoding, "encoding", "", "force a character encoding, e.g. ansel or cp1251")
	pf.StringVar(&flags.decodePolicy, "decode-policy", "", "invalid byte handling: strict, replace, ignore")

	rootCmd.AddCommand(newPeopleCommand(flags))
	rootCmd.AddCommand(newFamiliesCommand(flags))
	rootCmd.AddCommand(newEventsCommand(flags))
	rootCmd.AddCommand(newRecordsCommand(flags))
	rootCmd.AddCommand(newDateCommand(flags))
	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newExportCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter("auto", os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
