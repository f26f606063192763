package fix

import (
	"fmt"
	"slices"
)

// ConflictError describes two overlapping replacements.
type ConflictError struct {
	First  Replacement
	Second Replacement
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping replacements in %s: %s and %s",
		e.First.Snippet.FileName, e.First.Snippet.LineRange, e.Second.Snippet.LineRange)
}

// InvalidRangeError describes a replacement whose start lies after its end.
type InvalidRangeError struct {
	Replacement Replacement
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range %s in %s: start is after end",
		e.Replacement.Snippet.LineRange, e.Replacement.Snippet.FileName)
}

// ValidateReplacements checks that every replacement has a well-formed range.
func ValidateReplacements(replacements []Replacement) error {
	for _, r := range replacements {
		if !r.Snippet.LineRange.Valid() || r.Snippet.LineRange.Start.Line < 1 || r.Snippet.LineRange.Start.Column < 1 {
			return &InvalidRangeError{Replacement: r}
		}
	}
	return nil
}

// SortSuggestions orders suggestions by the start of the region they cover.
// Suggestions without replacements sort last. The sort is stable.
func SortSuggestions(suggestions []Suggestion) {
	slices.SortStableFunc(suggestions, func(a, b Suggestion) int {
		ra, okA := a.Range()
		rb, okB := b.Range()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		if c := ra.Start.Compare(rb.Start); c != 0 {
			return c
		}
		return ra.End.Compare(rb.End)
	})
}

// DetectConflicts returns the first pair of overlapping replacements, or nil.
func DetectConflicts(replacements []Replacement) error {
	sorted := slices.Clone(replacements)
	slices.SortStableFunc(sorted, func(a, b Replacement) int {
		return a.Snippet.LineRange.Start.Compare(b.Snippet.LineRange.Start)
	})

	for idx := 1; idx < len(sorted); idx++ {
		prev, curr := sorted[idx-1], sorted[idx]
		if prev.Snippet.LineRange.Overlaps(curr.Snippet.LineRange) {
			return &ConflictError{First: prev, Second: curr}
		}
	}
	return nil
}

// FilterConflicts drops suggestions that cannot be applied together with the
// ones before them. A suggestion is kept whole or not at all: it is skipped
// when its own replacements overlap (mutually exclusive solutions), when any
// range is invalid, or when it overlaps an already accepted suggestion.
// Earlier suggestions win.
func FilterConflicts(suggestions []Suggestion) ([]Suggestion, []Suggestion) {
	var accepted, skipped []Suggestion
	var taken []Replacement

	for _, sug := range suggestions {
		own := sug.Replacements()
		if ValidateReplacements(own) != nil || DetectConflicts(own) != nil || overlapsAny(own, taken) {
			skipped = append(skipped, sug)
			continue
		}
		accepted = append(accepted, sug)
		taken = append(taken, own...)
	}

	return accepted, skipped
}

func overlapsAny(replacements, taken []Replacement) bool {
	for _, r := range replacements {
		for _, t := range taken {
			if r.Snippet.FileName == t.Snippet.FileName && r.Snippet.LineRange.Overlaps(t.Snippet.LineRange) {
				return true
			}
		}
	}
	return false
}
