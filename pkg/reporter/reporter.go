// Package reporter writes the outcome of a fix run, or a list of suggestions,
// in one of several output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/rustfix/pkg/fix"
	"github.com/yaklabco/rustfix/pkg/runner"
)

// Reporter formats and writes fix results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of suggestions left unapplied and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)

	// ReportSuggestions writes suggestions that were extracted but not applied.
	ReportSuggestions(ctx context.Context, suggestions []fix.Suggestion) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ToolVersion == "" {
		opts.ToolVersion = defaults.ToolVersion
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// unapplied counts the suggestions a result left behind.
func unapplied(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.SuggestionsSkipped
}
