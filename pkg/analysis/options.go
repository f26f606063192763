// Package analysis aggregates a fix run by diagnostic code and by file.
package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by suggestion count, ties broken by name.
	SortByCount SortField = "count"
	// SortByAlpha sorts by code or file name.
	SortByAlpha SortField = "alpha"
	// SortBySkipped puts the codes and files with the most unapplied suggestions first.
	SortBySkipped SortField = "skipped"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySkipped:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	// SortBy specifies how to sort ByCode and ByFile.
	SortBy SortField

	// SortDesc sorts counts highest first. Alphabetical order is always ascending.
	SortDesc bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		SortBy:   SortByCount,
		SortDesc: true,
	}
}
