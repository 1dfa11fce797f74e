package configloader

import "github.com/yaklabco/gedkit/pkg/config"

// merge layers override on base. Empty strings and nil pointers in
// override leave base untouched; Compact can only be switched on.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	result := base.Clone()
	if override == nil {
		return result
	}

	setString(&result.DecodePolicy, override.DecodePolicy)
	setString(&result.Encoding, override.Encoding)
	setString(&result.NameOrder, override.NameOrder)
	setString(&result.LogLevel, override.LogLevel)
	setString(&result.Export.Database, override.Export.Database)

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.RequireCharset != nil {
		v := *override.RequireCharset
		result.RequireCharset = &v
	}
	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}
	if override.Output.Color != "" {
		result.Output.Color = override.Output.Color
	}
	if override.Output.Compact {
		result.Output.Compact = true
	}
	return result
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// MergeAll merges configurations in order; later ones win.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
