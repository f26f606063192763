package runner

import (
	"github.com/yaklabco/rustfix/pkg/fix"
)

// SkipReason explains why a file or suggestion was left alone.
type SkipReason string

const (
	// ReasonExcluded marks files matched by an exclude pattern.
	ReasonExcluded SkipReason = "excluded"
	// ReasonOutsideRoot marks files that resolve outside the root directory.
	ReasonOutsideRoot SkipReason = "outside root"
	// ReasonBinary marks files whose content is not text.
	ReasonBinary SkipReason = "binary file"
	// ReasonGenerated marks generated files.
	ReasonGenerated SkipReason = "generated file"
	// ReasonModified marks files changed by someone else while being patched.
	ReasonModified SkipReason = "file modified during processing"

	// ReasonConflict marks suggestions overlapping an earlier one.
	ReasonConflict SkipReason = "overlaps an earlier suggestion"
	// ReasonInvalidRange marks suggestions with an inverted or non-positive range.
	ReasonInvalidRange SkipReason = "invalid range"
	// ReasonStaleSpan marks suggestions whose spans no longer match the file.
	ReasonStaleSpan SkipReason = "span does not match file content"
)

// SkippedSuggestion is a suggestion that was not applied.
type SkippedSuggestion struct {
	Suggestion fix.Suggestion
	Reason     SkipReason
}

// FileOutcome is the result of processing one target file.
type FileOutcome struct {
	// Name is the file name as the diagnostics reported it.
	Name string

	// Path is the resolved path. Empty when the name could not be resolved.
	Path string

	// Applied are the suggestions whose replacements made it into the file
	// (or into the diff, in dry-run mode).
	Applied []fix.Suggestion

	// Skipped are the suggestions that were left out.
	Skipped []SkippedSuggestion

	// Diff is the change made to the file. Nil when nothing changed.
	Diff *fix.Diff

	// SkipReason is set when the whole file was left alone.
	SkipReason SkipReason

	// BackupCreated is true if a backup was written before patching.
	BackupCreated bool

	// Written is true if the file was rewritten on disk.
	Written bool

	// Error is set if the file could not be processed.
	Error error
}

// SkippedFile reports whether the whole file was left alone.
func (o *FileOutcome) SkippedFile() bool {
	return o.SkipReason != ""
}

// Summary returns a short human-readable state of the file.
func (o *FileOutcome) Summary() string {
	switch {
	case o.Error != nil:
		return "error"
	case o.SkippedFile():
		return "skipped: " + string(o.SkipReason)
	case o.Written && o.BackupCreated:
		return "fixed (backup created)"
	case o.Written:
		return "fixed"
	case o.Diff.HasChanges():
		return "changes pending"
	default:
		return "unchanged"
	}
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesTotal is the number of distinct files the suggestions target.
	FilesTotal int

	// FilesModified is the number of files rewritten (or that would be, in dry-run mode).
	FilesModified int

	// FilesSkipped is the number of files left alone as a whole.
	FilesSkipped int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// SuggestionsTotal is the number of per-file suggestions considered.
	SuggestionsTotal int

	// SuggestionsApplied is the number of suggestions applied.
	SuggestionsApplied int

	// SuggestionsSkipped is the number of suggestions not applied.
	SuggestionsSkipped int

	// Conflicts is the number of suggestions skipped for overlapping another.
	Conflicts int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by resolved path, then by reported name.
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Remaining reports whether any suggestion was left unapplied.
func (r *Result) Remaining() bool {
	return r != nil && (r.Stats.SuggestionsSkipped > 0 || r.Stats.FilesErrored > 0)
}

// Diffs returns the diffs of every changed file, in result order.
func (r *Result) Diffs() []*fix.Diff {
	var diffs []*fix.Diff
	for idx := range r.Files {
		if r.Files[idx].Diff.HasChanges() {
			diffs = append(diffs, r.Files[idx].Diff)
		}
	}
	return diffs
}

func (r *Result) accumulate(outcome FileOutcome, considered int) {
	r.Files = append(r.Files, outcome)
	r.Stats.FilesTotal++
	r.Stats.SuggestionsTotal += considered

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		r.Stats.SuggestionsSkipped += considered - len(outcome.Applied)
		return
	case outcome.SkippedFile():
		r.Stats.FilesSkipped++
	}

	if outcome.Diff.HasChanges() {
		r.Stats.FilesModified++
	}

	r.Stats.SuggestionsApplied += len(outcome.Applied)
	r.Stats.SuggestionsSkipped += considered - len(outcome.Applied)
	for _, skipped := range outcome.Skipped {
		if skipped.Reason == ReasonConflict {
			r.Stats.Conflicts++
		}
	}
}
