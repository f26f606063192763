package fix

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/yaklabco/rustfix/pkg/diagnostics"
)

// ErrEmptySpanText is returned for a span that carries no source lines.
// The compiler always attaches the covered lines, so this indicates a broken
// producer rather than something to skip.
var ErrEmptySpanText = errors.New("span has no source text")

// SuggestionsFromJSON decodes a stream of diagnostic records and collects a
// suggestion from every record that has one. It fails on the first malformed
// record and returns no partial results.
func SuggestionsFromJSON(r io.Reader, only CodeSet) ([]Suggestion, error) {
	dec := diagnostics.NewDecoder(r)

	var out []Suggestion
	for record := 1; ; record++ {
		diag, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		sug, err := CollectSuggestions(&diag, only)
		if err != nil {
			return nil, fmt.Errorf("diagnostic record %d: %w", record, err)
		}
		if sug != nil {
			out = append(out, *sug)
		}
	}
}

// CollectSuggestions extracts a suggestion from diag. It returns nil without
// an error when only is non-empty and diag's code is missing or not in it, and
// when no child diagnostic carries a suggested replacement.
func CollectSuggestions(diag *diagnostics.Diagnostic, only CodeSet) (*Suggestion, error) {
	if !only.Empty() {
		// Diagnostics without a code are builtin oddities; never in an allow-list.
		if diag.Code == nil || !only.Contains(diag.Code.Code) {
			return nil, nil
		}
	}

	var solutions []Solution
	for idx := range diag.Children {
		child := &diag.Children[idx]

		replacements, err := collectReplacements(child, nil)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", idx, err)
		}
		if len(replacements) == 0 {
			continue
		}
		solutions = append(solutions, Solution{
			Message:      child.Message,
			Replacements: replacements,
		})
	}

	if len(solutions) == 0 {
		return nil, nil
	}

	snippets := make([]Snippet, 0, len(diag.Spans))
	for idx := range diag.Spans {
		snippet, err := ParseSnippet(&diag.Spans[idx])
		if err != nil {
			return nil, fmt.Errorf("span %d: %w", idx, err)
		}
		snippets = append(snippets, snippet)
	}

	return &Suggestion{
		Message:   diag.Message,
		Code:      diag.CodeString(),
		Level:     diag.Level,
		Snippets:  snippets,
		Solutions: solutions,
	}, nil
}

// collectReplacements appends a replacement for every span of diag, and of
// its descendants, that carries a suggested replacement.
func collectReplacements(diag *diagnostics.Diagnostic, out []Replacement) ([]Replacement, error) {
	for idx := range diag.Spans {
		span := &diag.Spans[idx]
		if span.SuggestedReplacement == nil {
			continue
		}

		snippet, err := ParseSnippet(span)
		if err != nil {
			return nil, err
		}
		out = append(out, Replacement{
			Snippet:     snippet,
			Replacement: *span.SuggestedReplacement,
		})
	}

	for idx := range diag.Children {
		var err error
		out, err = collectReplacements(&diag.Children[idx], out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseSnippet converts a span into a de-indented snippet.
//
// The indentation removed from every line is the smallest, over all lines, of
// that line's leading whitespace clamped to its highlight start.
func ParseSnippet(span *diagnostics.Span) (Snippet, error) {
	if len(span.Text) == 0 {
		return Snippet{}, fmt.Errorf("%w: %s:%d:%d",
			ErrEmptySpanText, span.FileName, span.LineStart, span.ColumnStart)
	}

	lines := make([][]rune, len(span.Text))
	indent := -1
	for idx, line := range span.Text {
		lines[idx] = []rune(line.Text)
		width := min(leadingWhitespace(lines[idx]), line.HighlightStart)
		if indent < 0 || width < indent {
			indent = width
		}
	}

	first := span.Text[0]
	last := span.Text[len(span.Text)-1]
	lastLine := lines[len(lines)-1]

	start := first.HighlightStart - 1
	end := first.HighlightEnd - 1

	lead := runeSlice(lines[0], indent, start)

	var body strings.Builder
	body.WriteString(runeSlice(lines[0], start, end))
	for idx := 1; idx < len(lines)-1; idx++ {
		body.WriteByte('\n')
		body.WriteString(runeSlice(lines[idx], indent, len(lines[idx])))
	}
	if len(lines) > 1 {
		body.WriteByte('\n')
		body.WriteString(runeSlice(lastLine, indent, last.HighlightEnd-1))
	}

	tail := runeSlice(lastLine, last.HighlightEnd-1, len(lastLine))

	return Snippet{
		FileName: span.FileName,
		LineRange: LineRange{
			Start: LinePosition{Line: span.LineStart, Column: span.ColumnStart},
			End:   LinePosition{Line: span.LineEnd, Column: span.ColumnEnd},
		},
		ByteRange: ByteRange{Start: span.ByteStart, End: span.ByteEnd},
		Text: SnippetText{
			Lead: lead,
			Body: body.String(),
			Tail: tail,
		},
	}, nil
}

func leadingWhitespace(line []rune) int {
	count := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		count++
	}
	return count
}

// runeSlice returns line[lo:hi] with both bounds clamped to the line.
func runeSlice(line []rune, lo, hi int) string {
	lo = max(0, min(lo, len(line)))
	hi = max(lo, min(hi, len(line)))
	return string(line[lo:hi])
}
