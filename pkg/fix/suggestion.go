// Package fix turns compiler diagnostics into suggestions and applies their
// replacements to source text.
package fix

import (
	"fmt"
	"slices"
	"strings"
)

// LinePosition is a 1-based line and column in a file.
// Columns count characters, not bytes.
type LinePosition struct {
	Line   int
	Column int
}

func (p LinePosition) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before other in document order.
func (p LinePosition) Before(other LinePosition) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Compare orders positions in document order, returning -1, 0 or +1.
func (p LinePosition) Compare(other LinePosition) int {
	switch {
	case p.Before(other):
		return -1
	case other.Before(p):
		return 1
	default:
		return 0
	}
}

// LineRange is the region a replacement covers, start inclusive and end exclusive.
type LineRange struct {
	Start LinePosition
	End   LinePosition
}

func (r LineRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Valid reports whether Start is not positioned after End.
func (r LineRange) Valid() bool {
	return !r.End.Before(r.Start)
}

// Overlaps reports whether two ranges share any text. An empty range at the
// boundary of another does not overlap it.
func (r LineRange) Overlaps(other LineRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// ByteRange is the byte offsets a span reported, end exclusive.
type ByteRange struct {
	Start int
	End   int
}

// SnippetText splits a snippet into the text before the highlighted region on
// its first line, the highlighted region itself, and the text after it on its
// last line. Every line has the span's common indentation removed.
type SnippetText struct {
	Lead string
	Body string
	Tail string
}

// Snippet is a located, de-indented piece of source text.
type Snippet struct {
	FileName  string
	LineRange LineRange
	ByteRange ByteRange
	Text      SnippetText
}

// Replacement associates a snippet's location with the text that replaces it.
type Replacement struct {
	Snippet     Snippet
	Replacement string
}

// Solution is one coherent candidate fix.
type Solution struct {
	Message      string
	Replacements []Replacement
}

// Suggestion is one diagnostic finding: its display context and its fixes.
type Suggestion struct {
	Message string

	// Code is the diagnostic code, empty when the compiler gave none.
	Code string

	// Level is the diagnostic level ("error", "warning", ...).
	Level string

	// Snippets are informational; they carry no edits.
	Snippets []Snippet

	Solutions []Solution
}

// Replacements returns every replacement of every solution, in order.
func (s *Suggestion) Replacements() []Replacement {
	var out []Replacement
	for _, sol := range s.Solutions {
		out = append(out, sol.Replacements...)
	}
	return out
}

// Files returns the distinct file names the suggestion's replacements target,
// in first-seen order.
func (s *Suggestion) Files() []string {
	var files []string
	for _, r := range s.Replacements() {
		if !slices.Contains(files, r.Snippet.FileName) {
			files = append(files, r.Snippet.FileName)
		}
	}
	return files
}

// Range returns the smallest range covering all of the suggestion's
// replacements. The second result is false when there are none.
func (s *Suggestion) Range() (LineRange, bool) {
	replacements := s.Replacements()
	if len(replacements) == 0 {
		return LineRange{}, false
	}

	out := replacements[0].Snippet.LineRange
	for _, r := range replacements[1:] {
		if r.Snippet.LineRange.Start.Before(out.Start) {
			out.Start = r.Snippet.LineRange.Start
		}
		if out.End.Before(r.Snippet.LineRange.End) {
			out.End = r.Snippet.LineRange.End
		}
	}
	return out, true
}

// FileSuggestions is the set of suggestions that apply to one file.
type FileSuggestions struct {
	FileName    string
	Suggestions []Suggestion
}

// GroupByFile partitions suggestions by target file, in first-seen file order.
// A suggestion that touches several files is split so that each group only
// holds replacements for its own file.
func GroupByFile(suggestions []Suggestion) []FileSuggestions {
	var groups []FileSuggestions
	index := make(map[string]int)

	for _, sug := range suggestions {
		for _, name := range sug.Files() {
			idx, ok := index[name]
			if !ok {
				idx = len(groups)
				index[name] = idx
				groups = append(groups, FileSuggestions{FileName: name})
			}
			groups[idx].Suggestions = append(groups[idx].Suggestions, sug.forFile(name))
		}
	}
	return groups
}

// FilterByFile returns the suggestions with replacements in the named file,
// each restricted to that file.
func FilterByFile(suggestions []Suggestion, name string) []Suggestion {
	var out []Suggestion
	for idx := range suggestions {
		if slices.Contains(suggestions[idx].Files(), name) {
			out = append(out, suggestions[idx].forFile(name))
		}
	}
	return out
}

// forFile returns a copy of s restricted to replacements in the named file.
func (s *Suggestion) forFile(name string) Suggestion {
	out := Suggestion{
		Message: s.Message,
		Code:    s.Code,
		Level:   s.Level,
	}
	for _, sn := range s.Snippets {
		if sn.FileName == name {
			out.Snippets = append(out.Snippets, sn)
		}
	}
	for _, sol := range s.Solutions {
		var kept []Replacement
		for _, r := range sol.Replacements {
			if r.Snippet.FileName == name {
				kept = append(kept, r)
			}
		}
		if len(kept) > 0 {
			out.Solutions = append(out.Solutions, Solution{Message: sol.Message, Replacements: kept})
		}
	}
	return out
}

// CodeSet is an allow-list of diagnostic codes. The empty set allows everything.
type CodeSet map[string]struct{}

// NewCodeSet builds a CodeSet, ignoring blank entries.
func NewCodeSet(codes ...string) CodeSet {
	set := make(CodeSet, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code != "" {
			set[code] = struct{}{}
		}
	}
	return set
}

// Empty reports whether the set filters nothing.
func (c CodeSet) Empty() bool {
	return len(c) == 0
}

// Contains reports whether code is in the set.
func (c CodeSet) Contains(code string) bool {
	_, ok := c[code]
	return ok
}

// Codes returns the set's codes sorted.
func (c CodeSet) Codes() []string {
	out := make([]string, 0, len(c))
	for code := range c {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}
