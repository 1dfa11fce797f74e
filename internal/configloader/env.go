package configloader

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/yaklabco/gedkit/pkg/config"
)

// EnvPrefix starts every environment variable gedkit reads.
const EnvPrefix = "GEDKIT_"

type envVar struct {
	suffix string
	help   string
	apply  func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"DECODE_POLICY", "Invalid byte handling: strict, replace or ignore", func(cfg *config.Config, v string) error {
		cfg.DecodePolicy = v
		return nil
	}},
	{"REQUIRE_CHARSET", "Reject files without a CHAR header line: true or false", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		cfg.RequireCharset = &b
		return nil
	}},
	{"ENCODING", "Codec to use instead of the declared one", func(cfg *config.Config, v string) error {
		cfg.Encoding = v
		return nil
	}},
	{"NAME_ORDER", "Sort key: surname_given, given_surname, maiden_given or given_maiden", func(cfg *config.Config, v string) error {
		cfg.NameOrder = v
		return nil
	}},
	{"LOG_LEVEL", "Log level: debug, info, warn or error", func(cfg *config.Config, v string) error {
		cfg.LogLevel = v
		return nil
	}},
	{"JOBS", "Files read in parallel by check; 0 means one per CPU", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.Jobs = n
		return nil
	}},
	{"FORMAT", "Output format: text, json, table or html", func(cfg *config.Config, v string) error {
		cfg.Output.Format = config.OutputFormat(v)
		return nil
	}},
	{"COLOR", "Color: auto, always or never", func(cfg *config.Config, v string) error {
		cfg.Output.Color = config.ColorMode(v)
		return nil
	}},
	{"DATABASE", "Default export database path", func(cfg *config.Config, v string) error {
		cfg.Export.Database = v
		return nil
	}},
}

// applyEnv overrides cfg with every GEDKIT_* variable that is set.
func applyEnv(cfg *config.Config, getenv func(string) string) error {
	for _, ev := range envVars {
		value := getenv(EnvPrefix + ev.suffix)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, ev.suffix, err)
		}
	}
	return nil
}

// ListEnvVars returns the supported variables and their descriptions,
// sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envVars))
	for _, ev := range envVars {
		out = append(out, [2]string{EnvPrefix + ev.suffix, ev.help})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
