package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/owencmcgrath/hrml/pkg/config"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Export.Format != "html" {
		t.Errorf("export.format = %q, want html", result.Config.Export.Format)
	}
	if result.Config.Watch.Debounce != config.DefaultDebounce {
		t.Errorf("watch.debounce = %v, want %v", result.Config.Watch.Debounce, config.DefaultDebounce)
	}
	if result.Config.Convert.Flavor != config.FlavorCommonMark {
		t.Errorf("convert.flavor = %q, want %q", result.Config.Convert.Flavor, config.FlavorCommonMark)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".hrml.yml")
	writeConfig(t, configPath, `
render:
  detect_language: true
export:
  format: text
  width: 72
watch:
  debounce: 1s
ignore:
  - drafts/**
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if !cfg.Render.DetectLanguage {
		t.Error("render.detect_language = false, want true")
	}
	if cfg.Export.Format != "text" || cfg.Export.Width != 72 {
		t.Errorf("export = %+v, want text/72", cfg.Export)
	}
	if cfg.Export.Lang != "en" {
		t.Errorf("export.lang = %q, want default en", cfg.Export.Lang)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("watch.debounce = %v, want 1s", cfg.Watch.Debounce)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "drafts/**" {
		t.Errorf("ignore = %v", cfg.Ignore)
	}
	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != configPath {
		t.Errorf("LoadedFrom = %v, want [%s]", result.LoadedFrom, configPath)
	}
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, filepath.Join(root, ".hrml.yml"), "check:\n  format: json\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Check.Format != config.FormatJSON {
		t.Errorf("check.format = %q, want json", result.Config.Check.Format)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, filepath.Join(root, ".hrml.yml"), "check:\n  strict: true\n")
	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != "" {
		t.Errorf("FindProjectConfig() = %q, want none above VCS root", got)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".hrml.yml"), "export:\n  format: text\n  lang: fr\n")
	explicit := filepath.Join(tmpDir, "custom.yaml")
	writeConfig(t, explicit, "export:\n  format: document\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Export.Format != "document" {
		t.Errorf("export.format = %q, want document", result.Config.Export.Format)
	}
	if result.Config.Export.Lang != "fr" {
		t.Errorf("export.lang = %q, want fr from project layer", result.Config.Export.Lang)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".hrml.yml"), "export:\n  format: text\n  width: 60\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Export: config.ExportConfig{Width: 100},
		Check:  config.CheckConfig{Strict: true},
		Jobs:   4,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Export.Format != "text" {
		t.Errorf("export.format = %q, want text", cfg.Export.Format)
	}
	if cfg.Export.Width != 100 {
		t.Errorf("export.width = %d, want 100", cfg.Export.Width)
	}
	if !cfg.Check.Strict {
		t.Error("check.strict = false, want true")
	}
	if cfg.Jobs != 4 {
		t.Errorf("jobs = %d, want 4", cfg.Jobs)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HRML_EXPORT_FORMAT", "document")
	t.Setenv("HRML_WATCH_DEBOUNCE", "500ms")
	t.Setenv("HRML_CHECK_STRICT", "true")
	t.Setenv("HRML_IGNORE", "a/**, b.hrml ,")

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".hrml.yml"), "export:\n  format: text\n")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Export: config.ExportConfig{Format: "html"}}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Export.Format != "html" {
		t.Errorf("export.format = %q, want CLI value html", cfg.Export.Format)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("watch.debounce = %v, want 500ms", cfg.Watch.Debounce)
	}
	if !cfg.Check.Strict {
		t.Error("check.strict = false, want true")
	}
	if strings.Join(cfg.Ignore, "|") != "a/**|b.hrml" {
		t.Errorf("ignore = %q", cfg.Ignore)
	}
}

func TestLoad_EnvInvalid(t *testing.T) {
	t.Setenv("HRML_EXPORT_WIDTH", "wide")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "HRML_EXPORT_WIDTH") {
		t.Fatalf("Load() error = %v, want invalid integer", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "export: [", "parse yaml"},
		{"export format", "export:\n  format: pdf\n", "export.format"},
		{"check format", "check:\n  format: sarif\n", "check.format"},
		{"flavor", "convert:\n  flavor: mdx\n", "convert.flavor"},
		{"width", "export:\n  width: -1\n", "export.width"},
		{"debounce", "watch:\n  debounce: -1s\n", "watch.debounce"},
		{"ignore glob", "ignore:\n  - \"[\"\n", "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, ".hrml.yml")
			writeConfig(t, path, tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
			if tt.name != "bad yaml" && !strings.Contains(err.Error(), path) {
				t.Errorf("Load() error = %v, want file path", err)
			}
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".hrml.yml"), "export:\n  format: text\n  stylesheet: a.css\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "stylesheet") {
		t.Errorf("Warnings = %v, want stylesheet warning", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Error("Load() with cancelled context should return error")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}

	base := config.NewConfig()
	base.Ignore = []string{"a"}
	got := MergeAll(base,
		&config.Config{Export: config.ExportConfig{Title: "T"}},
		&config.Config{Convert: config.ConvertConfig{Flavor: config.FlavorGFM}},
	)

	if got.Export.Title != "T" || got.Convert.Flavor != config.FlavorGFM || got.Export.Format != "html" {
		t.Errorf("MergeAll() = %+v", got)
	}
	if len(got.Ignore) != 1 {
		t.Errorf("ignore = %v, want base kept", got.Ignore)
	}

	got.Ignore[0] = "changed"
	if base.Ignore[0] != "a" {
		t.Error("MergeAll() shares the ignore slice with its input")
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if _, ok := vars["HRML_EXPORT_FORMAT"]; !ok {
		t.Error("ListEnvVars() missing HRML_EXPORT_FORMAT")
	}
	if got := GetEnvVarName("watch.debounce"); got != "HRML_WATCH_DEBOUNCE" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(nope) = %q, want empty", got)
	}
}
