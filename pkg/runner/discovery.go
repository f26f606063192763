package runner

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/rustfix/pkg/fix"
	"github.com/yaklabco/rustfix/pkg/fsutil"
)

// Target is one file to patch together with the suggestions aimed at it.
type Target struct {
	// Name is the file name as the diagnostics reported it.
	Name string

	// Path is the resolved path. Empty when SkipReason is ReasonOutsideRoot.
	Path string

	// Suggestions hold only the replacements for this file.
	Suggestions []fix.Suggestion

	// SkipReason is set when the file must not be touched.
	SkipReason SkipReason
}

// Discover resolves the files targeted by suggestions against opts.Root and
// returns one Target per file, ordered by path. Names that resolve to the
// same path are merged into one target.
func Discover(opts Options, suggestions []fix.Suggestion) ([]Target, error) {
	root, err := resolveRoot(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	byPath := make(map[string]int)
	var targets []Target

	for _, group := range fix.GroupByFile(suggestions) {
		path, err := fsutil.ResolveWithin(root, group.FileName)
		if err != nil {
			targets = append(targets, Target{
				Name:        group.FileName,
				Suggestions: group.Suggestions,
				SkipReason:  ReasonOutsideRoot,
			})
			continue
		}

		if idx, ok := byPath[path]; ok {
			targets[idx].Suggestions = append(targets[idx].Suggestions, group.Suggestions...)
			continue
		}

		target := Target{Name: group.FileName, Path: path, Suggestions: group.Suggestions}
		if matchesExclude(root, path, opts.Exclude) {
			target.SkipReason = ReasonExcluded
		}
		byPath[path] = len(targets)
		targets = append(targets, target)
	}

	slices.SortStableFunc(targets, func(a, b Target) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Name, b.Name))
	})
	return targets, nil
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// matchesExclude matches path, relative to root, against the patterns. A
// pattern also matches when it names a parent directory of the file.
func matchesExclude(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern+"/**", rel); ok {
			return true
		}
	}
	return false
}
