// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/owencmcgrath/hrml/pkg/config"
)

// LoadOptions controls which layers Load reads.
type LoadOptions struct {
	WorkingDir   string // start of the project config search; "" means os.Getwd
	ExplicitPath string // --config

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds the flags the user set; it is the top layer.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string // files merged, lowest layer first
	Warnings   []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (HRML_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.hrml.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/hrml/config.yaml)
//  6. System config (/etc/hrml/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	layers := []*config.Config{config.NewConfig()}

	files := []struct {
		name    string
		path    string
		skipped bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, file := range files {
		if file.skipped || file.path == "" {
			continue
		}

		fileCfg, err := loadConfigFile(file.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", file.name, err)
		}

		validation := ValidateWithFile(fileCfg, file.path)
		if !validation.Valid() {
			return nil, validation.Err()
		}
		for _, w := range validation.Warnings {
			result.Warnings = append(result.Warnings, w.Error())
		}

		layers = append(layers, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, file.path)
	}

	cfg := MergeAll(layers...)

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	if validation := Validate(cfg); !validation.Valid() {
		return nil, validation.Err()
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile reads one configuration layer. Fields the file leaves out
// stay at their zero value so merge can tell them apart.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return config.FromYAML(content)
}
