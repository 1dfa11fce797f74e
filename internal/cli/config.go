package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gedkit/internal/configloader"
	"github.com/yaklabco/gedkit/internal/logging"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration files",
		Long: `Configuration is read from, lowest precedence first:

  /etc/gedkit/config.yaml
  $XDG_CONFIG_HOME/gedkit/config.yaml
  .gedkit.yaml in the working directory or a parent, up to the repository root
  the file named by --config
  GEDKIT_* environment variables
  command-line flags`,
	}

	cmd.AddCommand(newConfigShowCommand(global))
	cmd.AddCommand(newConfigPathCommand(global))
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigShowCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := global.newSession(cmd, global.cliConfig(cmd))
			if err != nil {
				return err
			}

			header := "# Effective gedkit configuration (built-in defaults)"
			if len(s.loaded.LoadedFrom) > 0 {
				header = "# Effective gedkit configuration\n# Loaded from:\n#   " +
					strings.Join(s.loaded.LoadedFrom, "\n#   ")
			}
			data, err := s.cfg.ToYAMLWithHeader(header)
			if err != nil {
				return err
			}
			_, err = s.out.Write(data)
			return err
		},
	}
}

func newConfigPathCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration files that are read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := global.newSession(cmd, global.cliConfig(cmd))
			if err != nil {
				return err
			}

			paths := s.loaded.Paths
			for _, p := range []struct{ name, path string }{
				{"system", paths.System},
				{"user", paths.User},
				{"project", paths.Project},
				{"explicit", paths.Explicit},
			} {
				value := p.path
				if value == "" {
					value = "-"
				}
				if _, err := fmt.Fprintf(s.out, "%-9s%s\n", p.name, value); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var (
		force  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented " + configloader.ProjectConfigName,
		Long: `Write a starter configuration file listing every option with its
default value. An existing file is only replaced with --force or after
confirmation on an interactive terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := filepath.Abs(output)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if err := configloader.WriteTemplate(cmd.Context(), path, force, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			logging.NewWithWriter(cmd.ErrOrStderr(), "info").Info("created configuration file", logging.FieldPath, output)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVarP(&output, "output", "o", configloader.ProjectConfigName, "output file path")

	return cmd
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables gedkit reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, v := range configloader.ListEnvVars() {
				if _, err := fmt.Fprintf(out, "%-24s%s\n", v[0], v[1]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
