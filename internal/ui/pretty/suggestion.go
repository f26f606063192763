package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/rustfix/pkg/fix"
)

// sourceIndent aligns source excerpts under the suggestion header.
const sourceIndent = "        "

// FormatSuggestion formats a suggestion and each of its solutions:
//
//	src/lib.rs:2:9  warning  variable does not need to be mutable  (unused_mut)
//	        let mut x = 3;
//	            ^^^^
//	    help: remove this `mut`
//	        - mut
//	        +
func (s *Styles) FormatSuggestion(sug *fix.Suggestion) string {
	var builder strings.Builder

	location := ""
	if rng, ok := sug.Range(); ok {
		files := sug.Files()
		location = fmt.Sprintf("%s:%d:%d", s.FilePath.Render(files[0]), rng.Start.Line, rng.Start.Column)
	} else if len(sug.Snippets) > 0 {
		first := sug.Snippets[0]
		location = fmt.Sprintf("%s:%d:%d", s.FilePath.Render(first.FileName),
			first.LineRange.Start.Line, first.LineRange.Start.Column)
	}

	header := []string{location, s.FormatLevel(sug.Level), s.Message.Render(sug.Message)}
	if sug.Code != "" {
		header = append(header, s.Code.Render("("+sug.Code+")"))
	}
	builder.WriteString("  " + strings.Join(nonEmpty(header), "  ") + "\n")

	for _, sol := range sug.Solutions {
		if len(sol.Replacements) > 0 {
			builder.WriteString(s.FormatSnippet(sol.Replacements[0].Snippet))
		}
		builder.WriteString("    " + s.Help.Render("help:") + " " + s.Message.Render(sol.Message) + "\n")
		for _, r := range sol.Replacements {
			builder.WriteString(s.FormatReplacement(r))
		}
	}

	return builder.String()
}

// FormatSnippet renders a snippet's first line with carets under the
// highlighted text. Widths are measured in terminal cells so wide characters
// keep the carets aligned.
func (s *Styles) FormatSnippet(snippet fix.Snippet) string {
	body, _, multiline := strings.Cut(snippet.Text.Body, "\n")
	line := snippet.Text.Lead + body
	if !multiline {
		line += snippet.Text.Tail
	}

	var builder strings.Builder
	builder.WriteString(sourceIndent + s.SourceLine.Render(line) + "\n")

	padding := runewidth.StringWidth(snippet.Text.Lead)
	width := max(runewidth.StringWidth(body), 1)
	builder.WriteString(sourceIndent + strings.Repeat(" ", padding) + s.Caret.Render(strings.Repeat("^", width)) + "\n")

	return builder.String()
}

// FormatReplacement renders the removed and inserted text of a replacement.
// Empty sides are omitted.
func (s *Styles) FormatReplacement(r fix.Replacement) string {
	var builder strings.Builder
	if r.Snippet.Text.Body != "" {
		for line := range strings.SplitSeq(r.Snippet.Text.Body, "\n") {
			builder.WriteString(sourceIndent + s.DiffRemove.Render("- ") + s.Removed.Render(line) + "\n")
		}
	}
	if r.Replacement != "" {
		for line := range strings.SplitSeq(r.Replacement, "\n") {
			builder.WriteString(sourceIndent + s.DiffAdd.Render("+ ") + s.Inserted.Render(line) + "\n")
		}
	}
	return builder.String()
}

// FormatLevel returns a styled diagnostic level.
func (s *Styles) FormatLevel(level string) string {
	switch level {
	case "error", "error: internal compiler error":
		return s.Error.Render(level)
	case "warning":
		return s.Warning.Render(level)
	case "note", "failure-note":
		return s.Note.Render(level)
	case "help":
		return s.Help.Render(level)
	default:
		return level
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	switch count {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 suggestion)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d suggestions)", count))
	}
	return header
}

// FormatDiff colors a unified diff line by line.
func (s *Styles) FormatDiff(diff string) string {
	var builder strings.Builder
	for line := range strings.SplitSeq(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "diff "), strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			builder.WriteString(s.DiffHeader.Render(line))
		case strings.HasPrefix(line, "@@"):
			builder.WriteString(s.DiffHunk.Render(line))
		case strings.HasPrefix(line, "+"):
			builder.WriteString(s.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			builder.WriteString(s.DiffRemove.Render(line))
		default:
			builder.WriteString(s.DiffContext.Render(line))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
