package diagnostics

import "strings"

// IsSuggestion reports whether the span carries a suggested replacement.
func (s *Span) IsSuggestion() bool {
	return s.SuggestedReplacement != nil
}

// Macro returns the outermost macro invocation span that produced s,
// or s itself when it did not come from a macro.
func (s *Span) Macro() Span {
	cur := *s
	for cur.Expansion != nil {
		cur = cur.Expansion.Span
	}
	return cur
}

// ByteText returns the source covered by the span's byte offsets.
// The second result is false when the offsets fall outside content.
func (s *Span) ByteText(content []byte) (string, bool) {
	if s.ByteStart < 0 || s.ByteEnd < s.ByteStart || s.ByteEnd > len(content) {
		return "", false
	}
	return string(content[s.ByteStart:s.ByteEnd]), true
}

// LineColumnText returns the source covered by the span's line and column
// coordinates. Columns count characters, not bytes.
// The second result is false when the lines fall outside content.
func (s *Span) LineColumnText(content []byte) (string, bool) {
	lines := strings.Split(string(content), "\n")
	if s.LineStart < 1 || s.LineEnd < s.LineStart || s.LineEnd > len(lines) {
		return "", false
	}

	var b strings.Builder
	for idx := s.LineStart; idx <= s.LineEnd; idx++ {
		line := []rune(lines[idx-1])
		lo, hi := 0, len(line)
		if idx == s.LineStart {
			lo = s.ColumnStart - 1
		}
		if idx == s.LineEnd {
			hi = s.ColumnEnd - 1
		}
		if lo < 0 || hi > len(line) || lo > hi {
			return "", false
		}
		if idx > s.LineStart {
			b.WriteByte('\n')
		}
		b.WriteString(string(line[lo:hi]))
	}
	return b.String(), true
}

// Consistent reports whether the span's byte offsets and its line/column
// coordinates select the same text in content. A mismatch means the
// diagnostic was produced against a different version of the file.
func (s *Span) Consistent(content []byte) bool {
	byBytes, ok := s.ByteText(content)
	if !ok {
		return false
	}
	byLines, ok := s.LineColumnText(content)
	if !ok {
		return false
	}
	return byBytes == byLines
}
