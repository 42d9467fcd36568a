package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/owencmcgrath/hrml/internal/logging"
	"github.com/owencmcgrath/hrml/pkg/config"
	"github.com/owencmcgrath/hrml/pkg/export"
	"github.com/owencmcgrath/hrml/pkg/fsutil"
	"github.com/owencmcgrath/hrml/pkg/hrml"
)

type watchFlags struct {
	exportFlags
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-render a file whenever it changes",
		Long:  watchLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	addExportFlags(cmd, &flags.exportFlags)
	cmd.Flags().DurationVar(&flags.debounce, "debounce", config.DefaultDebounce,
		"wait this long for edits to settle before re-rendering")

	return cmd
}

const watchLongDescription = `Render a file once, then re-render it every time it changes until
interrupted. Bursts of edits are coalesced and the output is only rewritten
when its content changes.

The output defaults to the input name with the extension of the format
(.html for html and document, .txt for text).

Examples:
  hrml watch notes.hrml                          # writes notes.html
  hrml watch notes.hrml --format document -o site/index.html
  hrml watch notes.hrml --debounce 1s`

func runWatch(cmd *cobra.Command, input string, flags *watchFlags) error {
	cliCfg := flags.cliConfig(cmd)
	if cmd.Flags().Changed("debounce") {
		if flags.debounce <= 0 {
			return fmt.Errorf("debounce must be positive, got %s", flags.debounce)
		}
		cliCfg.Watch.Debounce = flags.debounce
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return err
	}

	output := flags.output
	if output == "" {
		output = fsutil.OutputPath(input, format.Extension())
	}

	w, err := newWatcher(input, output, cfg)
	if err != nil {
		return err
	}
	if w.output == w.input {
		return fmt.Errorf("output %s would overwrite the input", output)
	}

	return w.run(commandContext(cmd))
}

// watcher re-renders one input file to one output file.
type watcher struct {
	input    string
	output   string
	cfg      *config.Config
	tr       *hrml.Transpiler
	debounce time.Duration
	logger   *log.Logger

	// last is the input as of the most recent render.
	last *fsutil.FileInfo

	// rendered is called after each render attempt; tests hook it.
	rendered func(error)
}

func newWatcher(input, output string, cfg *config.Config) (*watcher, error) {
	absInput, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolve input: %w", err)
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return nil, fmt.Errorf("resolve output: %w", err)
	}

	logger := logging.NewInteractive()
	logger.SetLevel(logging.Default().GetLevel())

	debounce := cfg.Watch.Debounce
	if debounce <= 0 {
		debounce = config.DefaultDebounce
	}

	return &watcher{
		input:    absInput,
		output:   absOutput,
		cfg:      cfg,
		tr:       newTranspiler(cfg),
		debounce: debounce,
		logger:   logger,
	}, nil
}

// run renders once, then watches the input's directory until ctx is done.
// Watching the directory rather than the file survives editors that save by
// renaming a temp file over the original.
func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.input)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.input), err)
	}

	if err := w.render(ctx); err != nil {
		return err
	}

	w.logger.Info("watching", logging.FieldPath, w.input, logging.FieldDebounce, w.debounce)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.input || event.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("file event", logging.FieldEvent, event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.refresh(ctx); err != nil && ctx.Err() == nil {
				w.logger.Warn("render failed", logging.FieldError, err)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.FieldError, err)
		}
	}
}

// refresh re-renders if the input content changed since the last render.
func (w *watcher) refresh(ctx context.Context) error {
	if w.last != nil {
		changed, err := fsutil.CheckModified(ctx, w.last)
		if err != nil {
			return err
		}
		if !changed {
			w.logger.Debug("content unchanged", logging.FieldPath, w.input)
			return nil
		}
	}
	return w.render(ctx)
}

func (w *watcher) render(ctx context.Context) (err error) {
	if w.rendered != nil {
		defer func() { w.rendered(err) }()
	}

	start := time.Now()

	source, info, err := fsutil.ReadFile(ctx, w.input)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) && w.last != nil {
			w.logger.Warn("input is gone; waiting for it to come back", logging.FieldPath, w.input)
			return nil
		}
		return fmt.Errorf("read input: %w", err)
	}

	content, res, err := renderOutput(w.tr, string(source), w.cfg)
	if err != nil {
		return err
	}
	logDiagnostics(w.logger, w.input, res.Diagnostics)

	changed, err := fsutil.WriteAtomicIfChanged(ctx, w.output, content, 0)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	w.last = info

	w.logger.Info("rendered",
		logging.FieldOutput, w.output,
		logging.FieldChanged, changed,
		logging.FieldDiagnostics, len(res.Diagnostics),
		logging.FieldDuration, time.Since(start).Round(time.Microsecond),
	)

	return nil
}
