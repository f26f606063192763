package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/yaklabco/rustfix/internal/logging"
	"github.com/yaklabco/rustfix/pkg/config"
	"github.com/yaklabco/rustfix/pkg/diagnostics"
	"github.com/yaklabco/rustfix/pkg/fix"
	"github.com/yaklabco/rustfix/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the target file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWriteFailure indicates the patched file or its backup could not be written.
	ErrWriteFailure = errors.New("write failure")

	// ErrConflict indicates overlapping suggestions under the fail policy.
	ErrConflict = errors.New("conflicting suggestions")
)

// Pipeline patches a single file safely.
type Pipeline struct{}

// NewPipeline creates a new pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// ProcessFile runs the pipeline for one target.
//
// The pipeline performs the following steps:
//  1. Read and hash the file.
//  2. Skip binary files, and generated files if configured.
//  3. Optionally drop suggestions whose spans no longer match the content.
//  4. Order suggestions and drop those that overlap an earlier one.
//  5. Apply the remaining replacements in memory and diff the result.
//  6. Stop here in dry-run mode.
//  7. Check for concurrent modifications.
//  8. Create a backup, if enabled.
//  9. Write the patched content atomically.
//
// Per-file failures are reported in FileOutcome.Error. The returned error is
// only set when ctx is done.
func (p *Pipeline) ProcessFile(ctx context.Context, target Target, opts Options) (FileOutcome, error) {
	outcome := FileOutcome{Name: target.Name, Path: target.Path}
	logger := logging.FromContext(ctx).With(logging.FieldPath, target.Name)

	if err := ctx.Err(); err != nil {
		return outcome, fmt.Errorf("processing cancelled: %w", err)
	}

	if target.SkipReason != "" {
		outcome.SkipReason = target.SkipReason
		logger.Debug("skipping file", logging.FieldReason, target.SkipReason)
		return outcome, nil
	}

	content, info, err := fsutil.ReadFile(ctx, target.Path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome, fmt.Errorf("processing cancelled: %w", ctxErr)
		}
		outcome.Error = categorizeError(err)
		return outcome, nil
	}

	switch fsutil.Classify(target.Path, content) {
	case fsutil.KindBinary:
		outcome.SkipReason = ReasonBinary
	case fsutil.KindGenerated:
		if opts.SkipGenerated {
			outcome.SkipReason = ReasonGenerated
		}
	case fsutil.KindSource:
	}
	if outcome.SkipReason != "" {
		logger.Warn("skipping file", logging.FieldReason, outcome.SkipReason)
		return outcome, nil
	}

	candidates := target.Suggestions
	if opts.VerifySpans {
		var stale []fix.Suggestion
		candidates, stale = partitionStale(content, candidates)
		for _, sug := range stale {
			outcome.Skipped = append(outcome.Skipped, SkippedSuggestion{Suggestion: sug, Reason: ReasonStaleSpan})
			logger.Warn("skipping suggestion", logging.FieldCode, sug.Code, logging.FieldReason, ReasonStaleSpan)
		}
	}

	ordered := make([]fix.Suggestion, len(candidates))
	copy(ordered, candidates)
	fix.SortSuggestions(ordered)

	accepted, rejected := fix.FilterConflicts(ordered)
	conflicts := 0
	for _, sug := range rejected {
		reason := ReasonConflict
		if fix.ValidateReplacements(sug.Replacements()) != nil {
			reason = ReasonInvalidRange
		} else {
			conflicts++
		}
		outcome.Skipped = append(outcome.Skipped, SkippedSuggestion{Suggestion: sug, Reason: reason})
		logger.Debug("skipping suggestion", logging.FieldCode, sug.Code, logging.FieldReason, reason)
	}

	if conflicts > 0 && opts.Conflicts == config.ConflictsFail {
		outcome.Error = fmt.Errorf("%w: %s", ErrConflict, target.Name)
		if err := fix.DetectConflicts(fix.Flatten(slices.Concat(accepted, rejected))); err != nil {
			outcome.Error = fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return outcome, nil
	}

	if len(accepted) == 0 {
		return outcome, nil
	}

	patched := []byte(fix.ApplySuggestions(string(content), accepted))
	outcome.Applied = accepted
	outcome.Diff = fix.GenerateDiff(target.Name, content, patched)
	if !outcome.Diff.HasChanges() || opts.DryRun {
		return outcome, nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		outcome.Error = fmt.Errorf("check modified: %w", err)
		return outcome, nil
	}
	if modified {
		outcome.SkipReason = ReasonModified
		outcome.Applied = nil
		outcome.Diff = nil
		logger.Warn("skipping file", logging.FieldReason, ReasonModified)
		return outcome, nil
	}

	created, err := fsutil.CreateBackup(ctx, target.Path, opts.Backup)
	if err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrWriteFailure, err)
		return outcome, nil
	}
	outcome.BackupCreated = created

	if err := fsutil.ReplaceFile(ctx, info, patched); err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrWriteFailure, err)
		return outcome, nil
	}
	outcome.Written = true

	logger.Debug("patched file",
		logging.FieldApplied, len(outcome.Applied),
		logging.FieldSkipped, len(outcome.Skipped),
		logging.FieldBackups, created,
	)
	return outcome, nil
}

// partitionStale splits suggestions into those whose every replacement span
// selects the same text by bytes and by line/column, and the rest.
func partitionStale(content []byte, suggestions []fix.Suggestion) ([]fix.Suggestion, []fix.Suggestion) {
	var fresh, stale []fix.Suggestion
	for _, sug := range suggestions {
		if spansMatch(content, sug.Replacements()) {
			fresh = append(fresh, sug)
		} else {
			stale = append(stale, sug)
		}
	}
	return fresh, stale
}

func spansMatch(content []byte, replacements []fix.Replacement) bool {
	for _, r := range replacements {
		rng := r.Snippet.LineRange
		span := diagnostics.Span{
			FileName:    r.Snippet.FileName,
			ByteStart:   r.Snippet.ByteRange.Start,
			ByteEnd:     r.Snippet.ByteRange.End,
			LineStart:   rng.Start.Line,
			LineEnd:     rng.End.Line,
			ColumnStart: rng.Start.Column,
			ColumnEnd:   rng.End.Column,
		}
		if !span.Consistent(content) {
			return false
		}
	}
	return true
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrWriteFailure) ||
		errors.Is(err, ErrConflict)
}
