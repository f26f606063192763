package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/rustfix/pkg/analysis"
	"github.com/yaklabco/rustfix/pkg/fix"
	"github.com/yaklabco/rustfix/pkg/runner"
)

// JSONOutput is the top-level JSON structure of a fix run.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`

	// Breakdown aggregates the run by diagnostic code and by file.
	Breakdown *analysis.Report `json:"breakdown,omitempty"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Name          string           `json:"name"`
	Path          string           `json:"path,omitempty"`
	Status        string           `json:"status"`
	Written       bool             `json:"written,omitempty"`
	BackupCreated bool             `json:"backupCreated,omitempty"`
	Applied       []JSONSuggestion `json:"applied"`
	Skipped       []JSONSuggestion `json:"skipped"`
	Diff          string           `json:"diff,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// JSONSuggestion represents a single suggestion.
type JSONSuggestion struct {
	Code      string         `json:"code,omitempty"`
	Level     string         `json:"level,omitempty"`
	Message   string         `json:"message"`
	Solutions []JSONSolution `json:"solutions"`
	Reason    string         `json:"reason,omitempty"`
}

// JSONSolution represents one candidate fix.
type JSONSolution struct {
	Message      string            `json:"message"`
	Replacements []JSONReplacement `json:"replacements"`
}

// JSONReplacement represents a single text replacement.
type JSONReplacement struct {
	File        string `json:"file"`
	Range       string `json:"range"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	ByteStart   int    `json:"byteStart"`
	ByteEnd     int    `json:"byteEnd"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesTotal         int `json:"filesTotal"`
	FilesModified      int `json:"filesModified"`
	FilesSkipped       int `json:"filesSkipped"`
	FilesErrored       int `json:"filesErrored"`
	SuggestionsTotal   int `json:"suggestionsTotal"`
	SuggestionsApplied int `json:"suggestionsApplied"`
	SuggestionsSkipped int `json:"suggestionsSkipped"`
	Conflicts          int `json:"conflicts"`
}

// JSONSuggestionList is the JSON structure of a suggestion listing.
type JSONSuggestionList struct {
	Version     string           `json:"version"`
	Suggestions []JSONSuggestion `json:"suggestions"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if err := r.encode(r.buildOutput(result)); err != nil {
		return 0, err
	}
	return unapplied(result), nil
}

// ReportSuggestions implements Reporter.
func (r *JSONReporter) ReportSuggestions(_ context.Context, suggestions []fix.Suggestion) error {
	list := JSONSuggestionList{
		Version:     r.opts.ToolVersion,
		Suggestions: make([]JSONSuggestion, 0, len(suggestions)),
	}
	for idx := range suggestions {
		list.Suggestions = append(list.Suggestions, toJSONSuggestion(&suggestions[idx], ""))
	}
	return r.encode(list)
}

func (r *JSONReporter) encode(value any) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: r.opts.ToolVersion,
		DryRun:  r.opts.DryRun,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for idx := range result.Files {
		file := &result.Files[idx]
		entry := JSONFileResult{
			Name:          file.Name,
			Path:          file.Path,
			Status:        file.Summary(),
			Written:       file.Written,
			BackupCreated: file.BackupCreated,
			Applied:       make([]JSONSuggestion, 0, len(file.Applied)),
			Skipped:       make([]JSONSuggestion, 0, len(file.Skipped)),
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		if file.Diff.HasChanges() {
			entry.Diff = file.Diff.Unified
		}
		for sIdx := range file.Applied {
			entry.Applied = append(entry.Applied, toJSONSuggestion(&file.Applied[sIdx], ""))
		}
		for sIdx := range file.Skipped {
			skipped := &file.Skipped[sIdx]
			entry.Skipped = append(entry.Skipped, toJSONSuggestion(&skipped.Suggestion, string(skipped.Reason)))
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesTotal:         stats.FilesTotal,
		FilesModified:      stats.FilesModified,
		FilesSkipped:       stats.FilesSkipped,
		FilesErrored:       stats.FilesErrored,
		SuggestionsTotal:   stats.SuggestionsTotal,
		SuggestionsApplied: stats.SuggestionsApplied,
		SuggestionsSkipped: stats.SuggestionsSkipped,
		Conflicts:          stats.Conflicts,
	}
	output.Breakdown = analysis.Analyze(result, analysis.DefaultOptions())
	return output
}

func toJSONSuggestion(sug *fix.Suggestion, reason string) JSONSuggestion {
	out := JSONSuggestion{
		Code:      sug.Code,
		Level:     sug.Level,
		Message:   sug.Message,
		Solutions: make([]JSONSolution, 0, len(sug.Solutions)),
		Reason:    reason,
	}
	for _, sol := range sug.Solutions {
		jsonSol := JSONSolution{
			Message:      sol.Message,
			Replacements: make([]JSONReplacement, 0, len(sol.Replacements)),
		}
		for _, r := range sol.Replacements {
			rng := r.Snippet.LineRange
			jsonSol.Replacements = append(jsonSol.Replacements, JSONReplacement{
				File:        r.Snippet.FileName,
				Range:       rng.String(),
				StartLine:   rng.Start.Line,
				StartColumn: rng.Start.Column,
				EndLine:     rng.End.Line,
				EndColumn:   rng.End.Column,
				ByteStart:   r.Snippet.ByteRange.Start,
				ByteEnd:     r.Snippet.ByteRange.End,
				Original:    r.Snippet.Text.Body,
				Replacement: r.Replacement,
			})
		}
		out.Solutions = append(out.Solutions, jsonSol)
	}
	return out
}
