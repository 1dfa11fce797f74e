package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gedkit/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "strict", cfg.DecodePolicy)
	assert.Equal(t, "surname_given", cfg.NameOrder)
	assert.Equal(t, config.FormatText, cfg.Output.Format)
	assert.Equal(t, config.ColorAuto, cfg.Output.Color)
	assert.False(t, cfg.RequiresCharset())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Encoding = "ansel"
	cfg.Output.Format = config.FormatHTML

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "decode_policy: strict")
	assert.Contains(t, string(data), "  format: html")

	back, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, `^# header\n\ndecode_policy:`, string(data))

	var nilCfg *config.Config
	data, err = nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFromYAMLPartial(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("require_charset: true\noutput:\n  color: never\n"))
	require.NoError(t, err)
	assert.True(t, cfg.RequiresCharset())
	assert.Equal(t, config.ColorNever, cfg.Output.Color)
	assert.Empty(t, cfg.DecodePolicy)

	_, err = config.FromYAML([]byte("output: [not, a, map]"))
	require.Error(t, err)
}

func TestTemplateParses(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(config.Template))
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig().Output, cfg.Output)
	assert.Equal(t, "surname_given", cfg.NameOrder)
}

func TestClone(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	clone := original.Clone()
	require.NotSame(t, original, clone)
	require.NotSame(t, original.RequireCharset, clone.RequireCharset)

	*clone.RequireCharset = true
	clone.Output.Format = config.FormatJSON
	assert.False(t, original.RequiresCharset())
	assert.Equal(t, config.FormatText, original.Output.Format)

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}

func TestOutputEnums(t *testing.T) {
	t.Parallel()

	f, err := config.ParseOutputFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, f)

	_, err = config.ParseOutputFormat("sarif")
	require.Error(t, err)

	assert.True(t, config.ColorNever.IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())

	assert.True(t, config.UseColor(config.ColorAlways, false))
	assert.False(t, config.UseColor(config.ColorNever, true))
	assert.True(t, config.UseColor(config.ColorAuto, true))
	assert.False(t, config.UseColor(config.ColorAuto, false))
}
