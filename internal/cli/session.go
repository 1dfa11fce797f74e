package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gedkit/internal/configloader"
	"github.com/yaklabco/gedkit/internal/logging"
	"github.com/yaklabco/gedkit/pkg/config"
	"github.com/yaklabco/gedkit/pkg/gedcom"
	"github.com/yaklabco/gedkit/pkg/report"
)

// session is the state of one command run after configuration is loaded.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	loaded *configloader.LoadResult
	logger *log.Logger
	out    io.Writer
}

// cliConfig collects the persistent flags the user actually set.
func (f *globalFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("color") {
		cfg.Output.Color = config.ColorMode(f.color)
	}
	if changed("format") {
		cfg.Output.Format = config.OutputFormat(f.format)
	}
	if f.compact {
		cfg.Output.Compact = true
	}
	if changed("encoding") {
		cfg.Encoding = f.encoding
	}
	if changed("decode-policy") {
		cfg.DecodePolicy = f.decodePolicy
	}
	if f.debug {
		cfg.LogLevel = "debug"
	}
	return cfg
}

// newSession loads the layered configuration with cli on top and builds
// the command logger.
func (f *globalFlags) newSession(cmd *cobra.Command, cli *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: f.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), loaded.Config.LogLevel)
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loaded.LoadedFrom)
	}

	return &session{
		ctx:    logging.WithLogger(ctx, logger),
		cfg:    loaded.Config,
		loaded: loaded,
		logger: logger,
		out:    cmd.OutOrStdout(),
	}, nil
}

// open opens a GEDCOM file with the configured decoding options.
func (s *session) open(path string) (*gedcom.Reader, error) {
	policy, err := gedcom.ParseDecodePolicy(s.cfg.DecodePolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	reader, err := gedcom.Open(path, gedcom.Options{
		Encoding:       s.cfg.Encoding,
		DecodePolicy:   policy,
		RequireCharset: s.cfg.RequiresCharset(),
		Logger:         s.logger,
	})
	if err != nil {
		return nil, err
	}

	enc := reader.Encoding()
	s.logger.Debug("opened file",
		logging.FieldPath, path,
		logging.FieldCodec, enc.Name,
		logging.FieldBOM, enc.BOMSize,
	)
	return reader, nil
}

// reporter creates the reporter for the configured output format.
func (s *session) reporter() (report.Reporter, error) {
	rep, err := report.New(report.Options{
		Writer:  s.out,
		Format:  s.cfg.Output.Format,
		Color:   string(s.cfg.Output.Color),
		Compact: s.cfg.Output.Compact,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return rep, nil
}

// closeReader closes reader, keeping the first error.
func closeReader(reader *gedcom.Reader, err *error) {
	if closeErr := reader.Close(); closeErr != nil {
		*err = errors.Join(*err, closeErr)
	}
}

// outputFormat is the effective --format for commands that bypass the
// reporter.
func (s *session) outputFormat() config.OutputFormat {
	if s.cfg.Output.Format == "" {
		return config.FormatText
	}
	return s.cfg.Output.Format
}
