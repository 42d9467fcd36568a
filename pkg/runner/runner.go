package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/owencmcgrath/hrml/pkg/fsutil"
	"github.com/owencmcgrath/hrml/pkg/hrml"
)

// Runner transpiles discovered files with a shared Transpiler.
type Runner struct {
	Transpiler *hrml.Transpiler
}

// New creates a Runner. A nil transpiler uses the default settings.
func New(t *hrml.Transpiler) *Runner {
	if t == nil {
		t = hrml.New()
	}
	return &Runner{Transpiler: t}
}

// Run discovers files under opts.Paths and transpiles them concurrently.
// Outcomes are returned in path order regardless of completion order.
// Cancellation stops feeding work; outcomes gathered so far are returned
// along with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.process(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// process reads, sanitizes and transpiles one file.
func (r *Runner) process(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	source := hrml.Sanitize(string(content))
	outcome.Source = source
	outcome.Result = r.Transpiler.Transpile(source)
	outcome.Stats = hrml.Count(source)
	return outcome
}
