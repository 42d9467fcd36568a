package cli

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/owencmcgrath/hrml/internal/configloader"
	"github.com/owencmcgrath/hrml/internal/logging"
	"github.com/owencmcgrath/hrml/pkg/config"
	"github.com/owencmcgrath/hrml/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new hrml configuration file",
		Long: `Create a new .hrml.yml configuration file in the current directory
with sensible defaults.

Examples:
  hrml init                      Create minimal .hrml.yml
  hrml init --full               Write every setting with its default
  hrml init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting with its default value")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	if flags.full {
		content = append(content, envVarComment()...)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("customize your configuration by editing the file")

	return nil
}

// envVarComment documents the environment overrides as a YAML comment.
func envVarComment() string {
	vars := configloader.ListEnvVars()
	names := slices.Sorted(maps.Keys(vars))

	var b strings.Builder
	b.WriteString("\n# Environment overrides (take precedence over this file):\n")
	for _, name := range names {
		fmt.Fprintf(&b, "#   %-24s %s\n", name, vars[name])
	}
	return b.String()
}
