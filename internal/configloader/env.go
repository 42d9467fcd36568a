package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/owencmcgrath/hrml/pkg/config"
)

// envVarPrefix is the prefix for all hrml environment variables.
const envVarPrefix = "HRML_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"DETECT_LANGUAGE":   {"render.detect_language", envTypeBool, "Infer code fence languages: true or false"},
	"EXPORT_FORMAT":     {"export.format", envTypeString, "Render output format: html, document, or text"},
	"EXPORT_TITLE":      {"export.title", envTypeString, "Title of standalone documents"},
	"EXPORT_LANG":       {"export.lang", envTypeString, "Language attribute of standalone documents"},
	"EXPORT_STYLESHEET": {"export.stylesheet", envTypeString, "Stylesheet URL for standalone documents"},
	"EXPORT_WIDTH":      {"export.width", envTypeInt, "Wrap width for text output (0 = no wrapping)"},
	"WATCH_DEBOUNCE":    {"watch.debounce", envTypeDuration, "Watch debounce delay, e.g. 250ms"},
	"CHECK_FORMAT":      {"check.format", envTypeString, "Check output format: text or json"},
	"CHECK_STRICT":      {"check.strict", envTypeBool, "Fail check on any diagnostic: true or false"},
	"FLAVOR":            {"convert.flavor", envTypeString, "Markdown flavor for convert: commonmark or gfm"},
	"JOBS":              {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"IGNORE":            {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with HRML_ (e.g., HRML_EXPORT_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		cfg.Watch.Debounce = d
		return nil
	case envTypeSlice:
		cfg.Ignore = parseSliceValue(value)
		return nil
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "export.format":
		cfg.Export.Format = value
	case "export.title":
		cfg.Export.Title = value
	case "export.lang":
		cfg.Export.Lang = value
	case "export.stylesheet":
		cfg.Export.Stylesheet = value
	case "check.format":
		cfg.Check.Format = config.OutputFormat(value)
	case "convert.flavor":
		cfg.Convert.Flavor = config.Flavor(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "render.detect_language":
		cfg.Render.DetectLanguage = value
	case "check.strict":
		cfg.Check.Strict = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "export.width":
		cfg.Export.Width = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
