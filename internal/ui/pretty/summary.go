package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/rustfix/pkg/analysis"
	"github.com/yaklabco/rustfix/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 suggestions applied in 2 files, 1 skipped (1 conflict)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.SuggestionsTotal == 0 {
		return s.Success.Render("No fixes to apply") + "\n"
	}

	verb := "applied"
	if dryRun {
		verb = "would be applied"
	}

	parts := []string{s.Success.Render(fmt.Sprintf("%d %s %s in %d %s",
		stats.SuggestionsApplied, plural(stats.SuggestionsApplied, "suggestion", "suggestions"), verb,
		stats.FilesModified, plural(stats.FilesModified, "file", "files")))}

	if stats.SuggestionsSkipped > 0 {
		skipped := fmt.Sprintf("%d skipped", stats.SuggestionsSkipped)
		if stats.Conflicts > 0 {
			skipped += fmt.Sprintf(" (%d %s)", stats.Conflicts, plural(stats.Conflicts, "conflict", "conflicts"))
		}
		parts = append(parts, s.Warning.Render(skipped))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, dryRun bool) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-20s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files targeted", s.SummaryValue.Render(strconv.Itoa(stats.FilesTotal)))
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")

	row("Suggestions", s.SummaryValue.Render(strconv.Itoa(stats.SuggestionsTotal)))
	row("  Applied", s.Success.Render(strconv.Itoa(stats.SuggestionsApplied)))
	if stats.SuggestionsSkipped > 0 {
		row("  Skipped", s.Warning.Render(strconv.Itoa(stats.SuggestionsSkipped)))
	}
	if stats.Conflicts > 0 {
		row("  Conflicts", s.Warning.Render(strconv.Itoa(stats.Conflicts)))
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be fixed"))
	case stats.SuggestionsSkipped > 0:
		builder.WriteString(s.Warning.Render("Some suggestions were not applied"))
	case dryRun:
		builder.WriteString(s.Success.Render("Dry run complete, no files written"))
	default:
		builder.WriteString(s.Success.Render("All suggestions applied"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatCodeBreakdown formats per-code suggestion counts, one row per code.
// Example: "  unused_mut          3 applied, 1 skipped (overlaps an earlier suggestion: 1)".
func (s *Styles) FormatCodeBreakdown(report *analysis.Report) string {
	if report == nil || len(report.ByCode) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.SummaryTitle.Render("By code"))
	builder.WriteString("\n")

	for _, code := range report.ByCode {
		counts := s.Success.Render(fmt.Sprintf("%d applied", code.Applied))
		if code.Skipped > 0 {
			counts += ", " + s.Warning.Render(fmt.Sprintf("%d skipped", code.Skipped))
			reasons := slices.Sorted(maps.Keys(code.Reasons))
			details := make([]string, 0, len(reasons))
			for _, reason := range reasons {
				details = append(details, fmt.Sprintf("%s: %d", reason, code.Reasons[reason]))
			}
			counts += s.Dim.Render(" (" + strings.Join(details, ", ") + ")")
		}
		builder.WriteString(fmt.Sprintf("  %-20s%s\n", s.Code.Render(code.Code), counts))
	}

	return builder.String()
}
