package fix

import (
	"slices"
	"strings"
)

// ApplySuggestions applies every replacement of every suggestion to text and
// returns the patched text.
//
// Replacement coordinates refer to the original text, so replacements are
// applied back to front (see BackToFront): an edit only shifts text after
// itself, which no remaining edit touches.
//
// With no replacements text is returned unchanged. Otherwise the result is
// normalized to end with a newline; see ApplySuggestion.
func ApplySuggestions(text string, suggestions []Suggestion) string {
	replacements := Flatten(suggestions)
	if len(replacements) == 0 {
		return text
	}

	for _, r := range BackToFront(replacements) {
		text = ApplySuggestion(text, r)
	}
	return text
}

// Flatten returns every replacement of every suggestion in declaration order.
// Snippets carry no edits and are not included.
func Flatten(suggestions []Suggestion) []Replacement {
	var out []Replacement
	for idx := range suggestions {
		out = append(out, suggestions[idx].Replacements()...)
	}
	return out
}

// BackToFront orders replacements for application, last position first.
// Replacements starting at the same position are applied in reverse
// declaration order, so that insertions at one point end up in declaration
// order. Input already in document order comes back simply reversed.
func BackToFront(replacements []Replacement) []Replacement {
	out := slices.Clone(replacements)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b Replacement) int {
		return b.Snippet.LineRange.Start.Compare(a.Snippet.LineRange.Start)
	})
	return out
}

// ApplySuggestion applies a single replacement to text.
//
// Lines before the range's start line and after its end line are copied
// unchanged; the start line up to the start column, the replacement, and the
// end line from the end column are joined in between. Lines and columns past
// the end of text read as empty, so the call never fails.
//
// The result always ends with a newline, whether or not text did. A text
// ending in "\r\n" keeps its carriage returns.
func ApplySuggestion(text string, r Replacement) string {
	lines := splitLines(text)
	start := r.Snippet.LineRange.Start
	end := r.Snippet.LineRange.End

	before := lines[:clampLine(start.Line-1, len(lines))]
	after := lines[max(clampLine(end.Line, len(lines)), len(before)):]

	var b strings.Builder
	b.Grow(len(text) + len(r.Replacement) + 1)

	for _, line := range before {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	startLine := lineAt(lines, start.Line)
	b.WriteString(startLine[:runeOffset(startLine, start.Column-1)])
	b.WriteString(r.Replacement)
	endLine := lineAt(lines, end.Line)
	b.WriteString(endLine[runeOffset(endLine, end.Column-1):])
	b.WriteByte('\n')

	for _, line := range after {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// splitLines splits text on "\n". A final newline does not start another line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lineAt returns the 1-based line n, or "" when there is no such line.
func lineAt(lines []string, n int) string {
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

func clampLine(n, count int) int {
	return max(0, min(n, count))
}

// runeOffset returns the byte offset of the n-th character of s, clamped to s.
func runeOffset(s string, n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for offset := range s {
		if count == n {
			return offset
		}
		count++
	}
	return len(s)
}
