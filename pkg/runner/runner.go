package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/gramlint/pkg/annotate"
	"github.com/yaklabco/gramlint/pkg/editor"
	"github.com/yaklabco/gramlint/pkg/fsutil"
)

// Run discovers files under opts.Paths and checks them concurrently.
// It returns a deterministic collection of FileOutcome values and
// aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Checks files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
//
// A failing file never aborts the batch; its outcome carries the error.
func Run(ctx context.Context, opts Options) (*Result, error) {
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
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, opts)
		}()
	}

	// Feed work in a separate goroutine.
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

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Collect results. Workers may complete out of order, so reassemble
	// in discovery order afterwards.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker checks files from workCh and sends outcomes to outCh.
func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := checkFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// checkFile loads one file into a buffer and runs the checker over it.
func checkFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Err = fmt.Errorf("read file: %w", err)
		return outcome
	}
	outcome.Content = content

	buf := editor.NewMemBuffer(string(content))
	host := &editor.CollectHost{}

	checkOpts := opts.Check
	checkOpts.Format = annotate.DetectFormat(path, content)

	sess, err := opts.Checker.Run(ctx, buf, host, checkOpts)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Problems = sess.Problems()
	outcome.Language = sess.Language()
	return outcome
}
