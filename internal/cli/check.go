package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/owencmcgrath/hrml/internal/logging"
	"github.com/owencmcgrath/hrml/pkg/config"
	"github.com/owencmcgrath/hrml/pkg/reporter"
	"github.com/owencmcgrath/hrml/pkg/runner"
)

// ErrIssuesFound is returned when check finds diagnostics that fail the run.
// It only signals a non-zero exit; the report has already been written.
var ErrIssuesFound = errors.New("issues found")

type checkFlags struct {
	format    string
	strict    bool
	jobs      int
	ignore    []string
	noContext bool
	compact   bool
	summary   bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report markup that renders on a best-effort basis",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail on any diagnostic, not just errors")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a detailed summary after text output")

	return cmd
}

const checkLongDescription = `Transpile HRML files and report every construct that was rendered on a
best-effort basis: unterminated spans and fences, stray closers, malformed
links, clamped headings and unsafe link targets.

By default, checks all .hrml files in the current directory and
subdirectories. Hidden files and directories are skipped.

Exit status is 1 when an error-level diagnostic is found or a file cannot be
read; with --strict any diagnostic fails the run.

Examples:
  hrml check                     # Check current directory
  hrml check docs/ notes.hrml    # Check specific paths
  hrml check --format json       # Output as JSON for CI
  hrml check --strict            # Fail on warnings too`

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{
		Check:  config.CheckConfig{Strict: flags.strict},
		Ignore: flags.ignore,
		Jobs:   flags.jobs,
	}
	if cmd.Flags().Changed("format") {
		cliCfg.Check.Format = config.OutputFormat(flags.format)
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Check.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}

	logger.Debug("starting check",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldStrict, cfg.Check.Strict,
	)

	result, err := runner.New(newTranspiler(cfg)).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	logger.Debug("check finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:          cmd.OutOrStdout(),
		Format:          format,
		Color:           colorMode(cmd),
		ShowContext:     !flags.noContext,
		ShowSummary:     true,
		DetailedSummary: flags.summary,
		Compact:         flags.compact,
		WorkingDir:      workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, cfg.Check.Strict) != ExitSuccess {
		return ErrIssuesFound
	}

	return nil
}
