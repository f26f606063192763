package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/rustfix/internal/ui/pretty"
	"github.com/yaklabco/rustfix/pkg/analysis"
	"github.com/yaklabco/rustfix/pkg/fix"
	"github.com/yaklabco/rustfix/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for idx := range result.Files {
		r.reportFile(&result.Files[idx])
	}

	switch {
	case !r.opts.ShowSummary:
	case r.opts.Verbose:
		fmt.Fprint(r.bw, r.styles.FormatCodeBreakdown(analysis.Analyze(result, analysis.DefaultOptions())))
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, r.opts.DryRun))
	default:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.DryRun))
	}

	return unapplied(result), nil
}

func (r *TextReporter) reportFile(file *runner.FileOutcome) {
	switch {
	case file.Error != nil:
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Name),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return
	case file.SkippedFile():
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Name),
			r.styles.Warning.Render("skipped ("+string(file.SkipReason)+")"),
		)
		return
	}

	showApplied := r.opts.Verbose && len(file.Applied) > 0
	if !showApplied && len(file.Skipped) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Name, len(file.Applied)))
	if showApplied {
		for idx := range file.Applied {
			fmt.Fprint(r.bw, r.styles.FormatSuggestion(&file.Applied[idx]))
		}
	}
	for idx := range file.Skipped {
		skipped := &file.Skipped[idx]
		fmt.Fprint(r.bw, r.styles.FormatSuggestion(&skipped.Suggestion))
		fmt.Fprintln(r.bw, "    "+r.styles.Warning.Render("not applied:")+" "+r.styles.Dim.Render(string(skipped.Reason)))
	}
	fmt.Fprintln(r.bw)
}

// ReportSuggestions implements Reporter.
func (r *TextReporter) ReportSuggestions(_ context.Context, suggestions []fix.Suggestion) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	groups := fix.GroupByFile(suggestions)
	for _, group := range groups {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(group.FileName, len(group.Suggestions)))
		for idx := range group.Suggestions {
			fmt.Fprint(r.bw, r.styles.FormatSuggestion(&group.Suggestions[idx]))
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		if len(suggestions) == 0 {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No suggestions found"))
			return nil
		}
		fmt.Fprintf(r.bw, "%d %s in %d %s\n",
			len(suggestions), pluralize(len(suggestions), "suggestion", "suggestions"),
			len(groups), pluralize(len(groups), "file", "files"))
	}
	return nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
