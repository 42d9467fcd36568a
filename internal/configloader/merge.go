package configloader

import "github.com/owencmcgrath/hrml/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true overrides, since false is indistinguishable from unset
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Render.DetectLanguage {
		result.Render.DetectLanguage = true
	}

	mergeString(&result.Export.Format, override.Export.Format)
	mergeString(&result.Export.Title, override.Export.Title)
	mergeString(&result.Export.Lang, override.Export.Lang)
	mergeString(&result.Export.Stylesheet, override.Export.Stylesheet)
	if override.Export.Width != 0 {
		result.Export.Width = override.Export.Width
	}

	if override.Watch.Debounce != 0 {
		result.Watch.Debounce = override.Watch.Debounce
	}

	if override.Check.Format != "" {
		result.Check.Format = override.Check.Format
	}
	if override.Check.Strict {
		result.Check.Strict = true
	}

	if override.Convert.Flavor != "" {
		result.Convert.Flavor = override.Convert.Flavor
	}

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
