package configloader_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gedkit/internal/configloader"
	"github.com/yaklabco/gedkit/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// isolated ignores the host's system and user files and environment.
func isolated(dir string) configloader.LoadOptions {
	return configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		Getenv:             func(string) string { return "" },
	}
}

func envMap(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	result, err := configloader.Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".gedkit.yaml"), "decode_policy: replace\noutput:\n  format: json\n")
	nested := filepath.Join(root, "trees", "smith")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := configloader.Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, "replace", result.Config.DecodePolicy)
	assert.Equal(t, config.FormatJSON, result.Config.Output.Format)
	assert.Equal(t, config.ColorAuto, result.Config.Output.Color)
	assert.Equal(t, []string{filepath.Join(root, ".gedkit.yaml")}, result.LoadedFrom)
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	userHome := t.TempDir()
	writeFile(t, filepath.Join(userHome, "gedkit", "config.yaml"), "log_level: debug\nname_order: given_surname\nencoding: ansel\n")
	writeFile(t, filepath.Join(dir, ".gedkit.yaml"), "name_order: maiden_given\nrequire_charset: true\n")
	explicit := filepath.Join(dir, "custom.yaml")
	writeFile(t, explicit, "output:\n  color: never\n  format: table\n")

	opts := configloader.LoadOptions{
		WorkingDir:         dir,
		ExplicitPath:       explicit,
		IgnoreSystemConfig: true,
		Getenv: envMap(map[string]string{
			"XDG_CONFIG_HOME":        userHome,
			"GEDKIT_FORMAT":          "html",
			"GEDKIT_REQUIRE_CHARSET": "false",
		}),
		CLIConfig: &config.Config{LogLevel: "error"},
	}

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "error", cfg.LogLevel, "flag beats user file")
	assert.Equal(t, "maiden_given", cfg.NameOrder, "project beats user")
	assert.Equal(t, "ansel", cfg.Encoding, "user beats default")
	assert.Equal(t, config.ColorNever, cfg.Output.Color, "explicit file")
	assert.Equal(t, config.FormatHTML, cfg.Output.Format, "environment beats explicit file")
	assert.False(t, cfg.RequiresCharset(), "environment can switch a flag off")
	assert.Len(t, result.LoadedFrom, 3)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoadValidationErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gedkit.yaml"),
		"decode_policy: lenient\nname_order: random\noutput:\n  format: sarif\n  color: rainbow\n")

	_, err := configloader.Load(context.Background(), isolated(dir))
	require.Error(t, err)

	msg := err.Error()
	for _, field := range []string{"decode_policy", "name_order", "output.format", "output.color"} {
		assert.Contains(t, msg, field)
	}
	assert.Contains(t, msg, ".gedkit.yaml")
}

func TestLoadEnvErrors(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.Getenv = envMap(map[string]string{"GEDKIT_REQUIRE_CHARSET": "maybe"})
	_, err := configloader.Load(context.Background(), opts)
	require.ErrorContains(t, err, "GEDKIT_REQUIRE_CHARSET")

	opts.Getenv = envMap(map[string]string{"GEDKIT_ENCODING": "klingon"})
	_, err = configloader.Load(context.Background(), opts)
	require.ErrorContains(t, err, "unknown codec")

	opts.Getenv = envMap(map[string]string{"GEDKIT_JOBS": "many"})
	_, err = configloader.Load(context.Background(), opts)
	require.ErrorContains(t, err, "GEDKIT_JOBS")

	opts.Getenv = envMap(map[string]string{"GEDKIT_JOBS": "-2"})
	_, err = configloader.Load(context.Background(), opts)
	require.ErrorContains(t, err, "jobs: must not be negative")

	opts.Getenv = envMap(map[string]string{"GEDKIT_JOBS": "3"})
	res, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Config.Jobs)
}

func TestLoadBadYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gedkit.yaml"), "output: [1, 2\n")
	_, err := configloader.Load(context.Background(), isolated(dir))
	require.ErrorContains(t, err, "load project config")

	opts := isolated(dir)
	opts.IgnoreProjectConfig = true
	opts.ExplicitPath = filepath.Join(dir, "missing.yaml")
	_, err = configloader.Load(context.Background(), opts)
	require.ErrorContains(t, err, "load explicit config")
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	inner := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(inner, 0o755))

	found, err := configloader.FindProjectConfig(context.Background(), inner)
	require.NoError(t, err)
	assert.Empty(t, found, "search stops at the repository root")

	writeFile(t, filepath.Join(root, "a", "gedkit.yml"), "log_level: warn\n")
	found, err = configloader.FindProjectConfig(context.Background(), inner)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "gedkit.yml"), found)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = configloader.FindProjectConfig(ctx, inner)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	on := true
	merged := configloader.MergeAll(
		config.NewConfig(),
		&config.Config{RequireCharset: &on, Output: config.OutputConfig{Compact: true}},
		&config.Config{DecodePolicy: "ignore"},
		nil,
	)
	assert.True(t, merged.RequiresCharset())
	assert.True(t, merged.Output.Compact)
	assert.Equal(t, "ignore", merged.DecodePolicy)
	assert.Equal(t, config.FormatText, merged.Output.Format)
	assert.Nil(t, configloader.MergeAll())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.True(t, configloader.Validate(config.NewConfig()).Valid())
	assert.True(t, configloader.Validate(&config.Config{}).Valid())
	assert.True(t, configloader.Validate(nil).Valid())
	assert.NoError(t, configloader.Validate(nil).Err())

	res := configloader.ValidateWithFile(&config.Config{LogLevel: "loud"}, "x.yaml")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "x.yaml: log_level: invalid log level \"loud\"; must be one of: debug, info, warn, error",
		res.Errors[0].Error())
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := configloader.ListEnvVars()
	require.NotEmpty(t, vars)
	for i, v := range vars {
		assert.True(t, strings.HasPrefix(v[0], configloader.EnvPrefix))
		assert.NotEmpty(t, v[1])
		if i > 0 {
			assert.Less(t, vars[i-1][0], v[0])
		}
	}
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), configloader.ProjectConfigName)
	var out bytes.Buffer

	require.NoError(t, configloader.WriteTemplate(context.Background(), path, false, strings.NewReader(""), &out))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Template, string(data))

	err = configloader.WriteTemplate(context.Background(), path, false, strings.NewReader("n\n"), &out)
	require.ErrorIs(t, err, configloader.ErrConfigExists)

	require.NoError(t, configloader.WriteTemplate(context.Background(), path, true, strings.NewReader(""), &out))
}
