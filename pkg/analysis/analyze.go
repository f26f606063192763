package analysis

import (
	"cmp"
	"maps"
	"slices"

	"github.com/yaklabco/rustfix/pkg/fix"
	"github.com/yaklabco/rustfix/pkg/runner"
)

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	codes     map[string]*CodeAnalysis
	files     map[string]*FileAnalysis
	codeFiles map[string]map[string]bool
	fileCodes map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		codes:     make(map[string]*CodeAnalysis),
		files:     make(map[string]*FileAnalysis),
		codeFiles: make(map[string]map[string]bool),
		fileCodes: make(map[string]map[string]bool),
	}
}

func codeOf(sug *fix.Suggestion) string {
	if sug.Code == "" {
		return noCode
	}
	return sug.Code
}

// record counts one suggestion against its code and file. reason is empty
// for an applied suggestion.
func (ctx *analysisContext) record(file string, sug *fix.Suggestion, reason string) {
	code := codeOf(sug)

	ca, ok := ctx.codes[code]
	if !ok {
		ca = &CodeAnalysis{Code: code}
		ctx.codes[code] = ca
		ctx.codeFiles[code] = make(map[string]bool)
	}
	fa, ok := ctx.files[file]
	if !ok {
		fa = &FileAnalysis{Name: file}
		ctx.files[file] = fa
		ctx.fileCodes[file] = make(map[string]bool)
	}

	ca.Suggestions++
	fa.Suggestions++
	ctx.codeFiles[code][file] = true
	ctx.fileCodes[file][code] = true

	if reason == "" {
		ca.Applied++
		fa.Applied++
		return
	}
	ca.Skipped++
	fa.Skipped++
	if ca.Reasons == nil {
		ca.Reasons = make(map[string]int)
	}
	ca.Reasons[reason]++
}

// Analyze aggregates result by diagnostic code and by file in a single pass.
// Files that failed or were skipped as a whole carry no per-suggestion
// outcome; they are only counted in Totals.Unprocessed.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{ByCode: []CodeAnalysis{}, ByFile: []FileAnalysis{}}
	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for idx := range result.Files {
		file := &result.Files[idx]
		if file.Error != nil || file.SkippedFile() {
			report.Totals.Unprocessed++
		}

		for sugIdx := range file.Applied {
			ctx.record(file.Name, &file.Applied[sugIdx], "")
		}
		for sugIdx := range file.Skipped {
			skipped := &file.Skipped[sugIdx]
			ctx.record(file.Name, &skipped.Suggestion, string(skipped.Reason))
		}
	}

	for _, ca := range ctx.codes {
		ca.Files = slices.Sorted(maps.Keys(ctx.codeFiles[ca.Code]))
		report.ByCode = append(report.ByCode, *ca)
		report.Totals.Suggestions += ca.Suggestions
		report.Totals.Applied += ca.Applied
		report.Totals.Skipped += ca.Skipped
	}
	for _, fa := range ctx.files {
		fa.Codes = slices.Sorted(maps.Keys(ctx.fileCodes[fa.Name]))
		report.ByFile = append(report.ByFile, *fa)
	}
	report.Totals.Codes = len(report.ByCode)
	report.Totals.Files = len(report.ByFile)

	sortBy(report.ByCode, opts, func(ca CodeAnalysis) (string, int, int) {
		return ca.Code, ca.Suggestions, ca.Skipped
	})
	sortBy(report.ByFile, opts, func(fa FileAnalysis) (string, int, int) {
		return fa.Name, fa.Suggestions, fa.Skipped
	})

	return report
}

// sortBy orders items by opts; key returns the name, total and skipped count.
// Ties always fall back to the name so the order is deterministic.
func sortBy[T any](items []T, opts Options, key func(T) (string, int, int)) {
	slices.SortFunc(items, func(left, right T) int {
		leftName, leftTotal, leftSkipped := key(left)
		rightName, rightTotal, rightSkipped := key(right)

		var result int
		switch opts.SortBy {
		case SortByAlpha:
		case SortBySkipped:
			result = cmp.Compare(rightSkipped, leftSkipped)
		default:
			result = cmp.Compare(leftTotal, rightTotal)
			if opts.SortDesc {
				result = -result
			}
		}
		if result == 0 {
			result = cmp.Compare(leftName, rightName)
		}
		return result
	})
}
