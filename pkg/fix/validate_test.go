package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rustfix/pkg/fix"
)

func TestLineRange_Overlaps(t *testing.T) {
	t.Parallel()

	rng := func(l1, c1, l2, c2 int) fix.LineRange {
		return fix.LineRange{Start: fix.LinePosition{Line: l1, Column: c1}, End: fix.LinePosition{Line: l2, Column: c2}}
	}

	tests := []struct {
		name string
		a, b fix.LineRange
		want bool
	}{
		{name: "disjoint lines", a: rng(1, 1, 1, 5), b: rng(2, 1, 2, 5), want: false},
		{name: "adjacent on one line", a: rng(1, 1, 1, 5), b: rng(1, 5, 1, 9), want: false},
		{name: "shared text", a: rng(1, 1, 1, 6), b: rng(1, 5, 1, 9), want: true},
		{name: "contained", a: rng(1, 1, 3, 1), b: rng(2, 1, 2, 4), want: true},
		{name: "insertion at boundary", a: rng(1, 1, 1, 5), b: rng(1, 5, 1, 5), want: false},
		{name: "insertion inside", a: rng(1, 1, 1, 5), b: rng(1, 3, 1, 3), want: true},
		{name: "multi line across", a: rng(1, 4, 2, 3), b: rng(2, 1, 2, 2), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestValidateReplacements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repl    fix.Replacement
		wantErr bool
	}{
		{name: "valid", repl: replacement(1, 1, 1, 4, "x")},
		{name: "insertion", repl: replacement(2, 3, 2, 3, "x")},
		{name: "start after end", repl: replacement(2, 5, 2, 1, "x"), wantErr: true},
		{name: "start line after end line", repl: replacement(3, 1, 2, 9, "x"), wantErr: true},
		{name: "line zero", repl: replacement(0, 1, 1, 1, "x"), wantErr: true},
		{name: "column zero", repl: replacement(1, 0, 1, 1, "x"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateReplacements([]fix.Replacement{tt.repl})
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var rangeErr *fix.InvalidRangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Contains(t, err.Error(), "src/lib.rs")
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	t.Run("no conflicts", func(t *testing.T) {
		t.Parallel()

		err := fix.DetectConflicts([]fix.Replacement{
			replacement(3, 1, 3, 4, "c"),
			replacement(1, 1, 1, 4, "a"),
			replacement(1, 4, 1, 8, "b"),
		})
		assert.NoError(t, err)
	})

	t.Run("overlap", func(t *testing.T) {
		t.Parallel()

		err := fix.DetectConflicts([]fix.Replacement{
			replacement(2, 1, 2, 10, "late"),
			replacement(1, 1, 1, 4, "a"),
			replacement(2, 5, 2, 6, "inner"),
		})
		var conflict *fix.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "late", conflict.First.Replacement)
		assert.Equal(t, "inner", conflict.Second.Replacement)
		assert.Contains(t, err.Error(), "2:1-2:10")
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, fix.DetectConflicts(nil))
	})
}

func TestSortSuggestions(t *testing.T) {
	t.Parallel()

	noEdits := fix.Suggestion{Message: "none"}
	late := suggestionOf(replacement(5, 1, 5, 2, "late"))
	early := suggestionOf(replacement(1, 1, 1, 2, "early"))
	wide := suggestionOf(replacement(1, 1, 2, 1, "wide"))

	suggestions := []fix.Suggestion{noEdits, late, wide, early}
	fix.SortSuggestions(suggestions)

	got := make([]string, 0, len(suggestions))
	for _, sug := range suggestions {
		if len(sug.Solutions) == 0 {
			got = append(got, "none")
			continue
		}
		got = append(got, sug.Solutions[0].Replacements[0].Replacement)
	}
	assert.Equal(t, []string{"early", "wide", "late", "none"}, got)
}

func TestFilterConflicts(t *testing.T) {
	t.Parallel()

	first := suggestionOf(replacement(1, 1, 1, 5, "first"))
	overlapping := suggestionOf(replacement(1, 3, 1, 8, "overlapping"))
	disjoint := suggestionOf(replacement(2, 1, 2, 5, "disjoint"))
	otherFile := suggestionOf(replacement(1, 1, 1, 5, "other"))
	otherFile.Solutions[0].Replacements[0].Snippet.FileName = "src/main.rs"

	// Two solutions rewriting the same text are alternatives, not a combined fix.
	alternatives := fix.Suggestion{Solutions: []fix.Solution{
		{Replacements: []fix.Replacement{replacement(3, 1, 3, 4, "alt1")}},
		{Replacements: []fix.Replacement{replacement(3, 1, 3, 4, "alt2")}},
	}}
	invalid := suggestionOf(replacement(4, 5, 4, 1, "invalid"))

	accepted, skipped := fix.FilterConflicts([]fix.Suggestion{first, overlapping, disjoint, otherFile, alternatives, invalid})

	require.Len(t, accepted, 3)
	assert.Equal(t, "first", accepted[0].Solutions[0].Replacements[0].Replacement)
	assert.Equal(t, "disjoint", accepted[1].Solutions[0].Replacements[0].Replacement)
	assert.Equal(t, "other", accepted[2].Solutions[0].Replacements[0].Replacement)

	require.Len(t, skipped, 3)
	assert.Equal(t, "overlapping", skipped[0].Solutions[0].Replacements[0].Replacement)
	assert.Len(t, skipped[1].Solutions, 2)
	assert.Equal(t, "invalid", skipped[2].Solutions[0].Replacements[0].Replacement)
}

func TestGroupByFile(t *testing.T) {
	t.Parallel()

	lib := replacement(1, 1, 1, 2, "lib")
	main := replacement(1, 1, 1, 2, "main")
	main.Snippet.FileName = "src/main.rs"

	suggestions := []fix.Suggestion{
		{Message: "both", Code: "E0001", Solutions: []fix.Solution{{Message: "s", Replacements: []fix.Replacement{main, lib}}}},
		suggestionOf(replacement(2, 1, 2, 2, "lib2")),
	}

	groups := fix.GroupByFile(suggestions)
	require.Len(t, groups, 2)

	assert.Equal(t, "src/main.rs", groups[0].FileName)
	require.Len(t, groups[0].Suggestions, 1)
	assert.Equal(t, "E0001", groups[0].Suggestions[0].Code)
	assert.Len(t, groups[0].Suggestions[0].Replacements(), 1)

	assert.Equal(t, "src/lib.rs", groups[1].FileName)
	require.Len(t, groups[1].Suggestions, 2)
	assert.Equal(t, "lib", groups[1].Suggestions[0].Replacements()[0].Replacement)
	assert.Equal(t, "lib2", groups[1].Suggestions[1].Replacements()[0].Replacement)
}

func TestFilterByFile(t *testing.T) {
	t.Parallel()

	lib := replacement(1, 1, 1, 2, "lib")
	main := replacement(1, 1, 1, 2, "main")
	main.Snippet.FileName = "src/main.rs"

	suggestions := []fix.Suggestion{
		{Solutions: []fix.Solution{{Replacements: []fix.Replacement{main, lib}}}},
		suggestionOf(replacement(2, 1, 2, 2, "lib2")),
	}

	got := fix.FilterByFile(suggestions, "src/main.rs")
	require.Len(t, got, 1)
	require.Len(t, got[0].Replacements(), 1)
	assert.Equal(t, "main", got[0].Replacements()[0].Replacement)

	assert.Len(t, fix.FilterByFile(suggestions, "src/lib.rs"), 2)
	assert.Empty(t, fix.FilterByFile(suggestions, "build.rs"))
}

func TestCodeSet(t *testing.T) {
	t.Parallel()

	set := fix.NewCodeSet(" unused_mut ", "", "E0308", "unused_mut")
	assert.False(t, set.Empty())
	assert.True(t, set.Contains("unused_mut"))
	assert.True(t, set.Contains("E0308"))
	assert.False(t, set.Contains("E0001"))
	assert.Equal(t, []string{"E0308", "unused_mut"}, set.Codes())

	assert.True(t, fix.NewCodeSet().Empty())
	assert.True(t, fix.CodeSet(nil).Empty())
}
