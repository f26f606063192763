package reporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/rustfix/internal/ui/pretty"
	"github.com/yaklabco/rustfix/pkg/fix"
	"github.com/yaklabco/rustfix/pkg/runner"
)

// ErrDiffNeedsRun is returned when suggestions are listed in diff format;
// a diff only exists once suggestions have been applied to file content.
var ErrDiffNeedsRun = errors.New("diff format is only available for fix runs")

// DiffReporter formats results as git-style unified diffs. With color off
// the output can be fed to `git apply` or `patch -p1`.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. File errors are not part of the patch; they
// reach the user through the log.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, diff := range result.Diffs() {
		files++
		additions += diff.Additions
		deletions += diff.Deletions
		r.writeDiff(diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}

	return unapplied(result), nil
}

// ReportSuggestions implements Reporter.
func (r *DiffReporter) ReportSuggestions(context.Context, []fix.Suggestion) error {
	return ErrDiffNeedsRun
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	fmt.Fprint(r.bw, r.styles.FormatDiff(diff.FullString()))
}

// writeSummary writes a git-style "--stat" tail line.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pluralize(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pluralize(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pluralize(deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}
