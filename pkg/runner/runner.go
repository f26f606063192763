package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/rustfix/internal/logging"
	"github.com/yaklabco/rustfix/pkg/fix"
)

// Runner applies suggestions across files using a Pipeline per file.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *Pipeline) *Runner {
	if pipeline == nil {
		pipeline = NewPipeline()
	}
	return &Runner{Pipeline: pipeline}
}

// Run groups suggestions by target file and processes the files
// concurrently, at most opts.Jobs at a time. Result.Files is ordered by path
// regardless of completion order. A file's failure is recorded in its
// outcome and does not stop the others; Run itself only fails when the
// targets cannot be resolved or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, opts Options, suggestions []fix.Suggestion) (*Result, error) {
	targets, err := Discover(opts, suggestions)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("applying suggestions",
		logging.FieldFiles, len(targets),
		logging.FieldSuggestions, len(suggestions),
		logging.FieldDryRun, opts.DryRun,
	)

	result := &Result{Files: make([]FileOutcome, 0, len(targets))}
	if len(targets) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]FileOutcome, len(targets))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for idx, target := range targets {
		group.Go(func() error {
			outcome, err := r.Pipeline.ProcessFile(groupCtx, target, opts)
			outcomes[idx] = outcome
			return err
		})
	}
	waitErr := group.Wait()

	for idx, outcome := range outcomes {
		if outcome.Name == "" {
			// Never started because the run was cancelled.
			continue
		}
		result.accumulate(outcome, len(targets[idx].Suggestions))
		if outcome.Error != nil {
			logger.Warn("could not fix file", logging.FieldPath, outcome.Name, logging.FieldError, outcome.Error)
		}
	}

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
