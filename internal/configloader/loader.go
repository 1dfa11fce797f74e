// Package configloader resolves the gedkit configuration from its layered
// sources: defaults, system, user and project files, an explicit --config
// file, GEDKIT_* environment variables and command-line flags.
package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gedkit/pkg/config"
	"github.com/yaklabco/gedkit/pkg/fsutil"
)

// configFilePermissions is the mode of files written by WriteTemplate.
const configFilePermissions = 0o644

// ErrConfigExists is returned by WriteTemplate when the target exists and
// overwriting was declined.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to
	// the current directory.
	WorkingDir string

	// ExplicitPath is the --config file.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// CLIConfig carries values set by flags; it has the highest precedence.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
}

// Load merges every configuration source, lowest precedence first, and
// validates the result. All validation failures are returned together.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	paths, err := discoverPaths(ctx, workDir, getenv)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		if res := ValidateWithFile(fileCfg, layer.path); !res.Valid() {
			return nil, res.Err()
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := applyEnv(cfg, getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	if res := Validate(cfg); !res.Valid() {
		return nil, res.Err()
	}

	result.Config = cfg
	return result, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteTemplate writes the starter configuration to path. An existing file
// is replaced only with force, or after confirmation on an interactive
// terminal.
func WriteTemplate(ctx context.Context, path string, force bool, in io.Reader, out io.Writer) error {
	if fileExists(path) && !force {
		if !isInteractive() || !confirm(in, out, path+" exists. Overwrite? [y/N] ") {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	if err := fsutil.WriteAtomic(ctx, path, []byte(config.Template), configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	if _, err := io.WriteString(out, prompt); err != nil {
		return false
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
