package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/rustfix/pkg/fix"
	"github.com/yaklabco/rustfix/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// rustcIndexURI documents every rustc error code.
const rustcIndexURI = "https://doc.rust-lang.org/error_codes/error-index.html"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one diagnostic code.
type SARIFRule struct {
	ID               string                `json:"id"`
	ShortDescription *SARIFMultiformatText `json:"shortDescription,omitempty"`
	FullDescription  *SARIFMultiformatText `json:"fullDescription,omitempty"`
	HelpURI          string                `json:"helpUri,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text     string `json:"text"`
	Markdown string `json:"markdown,omitempty"`
}

// SARIFResult represents a single suggestion.
type SARIFResult struct {
	RuleID     string          `json:"ruleId,omitempty"`
	Level      string          `json:"level"`
	Kind       string          `json:"kind,omitempty"`
	Message    SARIFMessage    `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Fixes      []SARIFFix      `json:"fixes,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter formats results as SARIF. Every suggestion becomes a result
// carrying its solutions as fixes. Applied suggestions are marked with the
// "applied" property.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	builder := r.newBuilder()
	if result != nil {
		for idx := range result.Files {
			file := &result.Files[idx]
			for sIdx := range file.Applied {
				builder.add(&file.Applied[sIdx], map[string]any{"applied": true})
			}
			for sIdx := range file.Skipped {
				skipped := &file.Skipped[sIdx]
				builder.add(&skipped.Suggestion, map[string]any{"applied": false, "reason": string(skipped.Reason)})
			}
		}
	}

	if err := r.encode(builder.output); err != nil {
		return 0, err
	}
	return unapplied(result), nil
}

// ReportSuggestions implements Reporter.
func (r *SARIFReporter) ReportSuggestions(_ context.Context, suggestions []fix.Suggestion) error {
	builder := r.newBuilder()
	for idx := range suggestions {
		builder.add(&suggestions[idx], nil)
	}
	return r.encode(builder.output)
}

func (r *SARIFReporter) encode(output *SARIFOutput) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

type sarifBuilder struct {
	output       *SARIFOutput
	explanations map[string]string
	rulesSeen    map[string]bool
}

func (r *SARIFReporter) newBuilder() *sarifBuilder {
	return &sarifBuilder{
		output: &SARIFOutput{
			Schema:  sarifSchemaURI,
			Version: sarifVersion,
			Runs: []SARIFRun{{
				Tool: SARIFTool{
					Driver: SARIFDriver{
						Name:           "rustfix",
						Version:        r.opts.ToolVersion,
						InformationURI: "https://github.com/yaklabco/rustfix",
						Rules:          make([]SARIFRule, 0),
					},
				},
				Results: make([]SARIFResult, 0),
			}},
		},
		explanations: r.opts.Explanations,
		rulesSeen:    make(map[string]bool),
	}
}

func (b *sarifBuilder) add(sug *fix.Suggestion, properties map[string]any) {
	run := &b.output.Runs[0]

	if sug.Code != "" && !b.rulesSeen[sug.Code] {
		b.rulesSeen[sug.Code] = true
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, b.rule(sug.Code))
	}

	result := SARIFResult{
		RuleID:     sug.Code,
		Level:      levelToSARIF(sug.Level),
		Message:    SARIFMessage{Text: sug.Message},
		Locations:  make([]SARIFLocation, 0, 1),
		Properties: properties,
	}
	if result.Level == "none" {
		result.Kind = "informational"
	}

	if replacements := sug.Replacements(); len(replacements) > 0 {
		rng, _ := sug.Range()
		result.Locations = append(result.Locations, SARIFLocation{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: artifactURI(replacements[0].Snippet.FileName)},
				Region:           toRegion(rng),
			},
		})
	}

	for _, sol := range sug.Solutions {
		result.Fixes = append(result.Fixes, toSARIFFix(sol))
	}

	run.Results = append(run.Results, result)
}

func (b *sarifBuilder) rule(code string) SARIFRule {
	rule := SARIFRule{ID: code}
	if explanation, ok := b.explanations[code]; ok && explanation != "" {
		rule.FullDescription = &SARIFMultiformatText{Text: explanation, Markdown: explanation}
		if summary := SummarizeExplanation(explanation); summary != "" {
			rule.ShortDescription = &SARIFMultiformatText{Text: summary}
		}
		rule.HelpURI = rustcIndexURI + "#" + code
	}
	return rule
}

// toSARIFFix groups a solution's replacements by file, in first-seen order.
func toSARIFFix(sol fix.Solution) SARIFFix {
	out := SARIFFix{
		Description:     SARIFMessage{Text: sol.Message},
		ArtifactChanges: make([]SARIFArtifactChange, 0, 1),
	}
	index := make(map[string]int)
	for _, r := range sol.Replacements {
		idx, ok := index[r.Snippet.FileName]
		if !ok {
			idx = len(out.ArtifactChanges)
			index[r.Snippet.FileName] = idx
			out.ArtifactChanges = append(out.ArtifactChanges, SARIFArtifactChange{
				ArtifactLocation: SARIFArtifactLocation{URI: artifactURI(r.Snippet.FileName)},
			})
		}
		replacement := SARIFReplacement{DeletedRegion: toRegion(r.Snippet.LineRange)}
		if r.Replacement != "" {
			replacement.InsertedContent = &SARIFInsertedContent{Text: r.Replacement}
		}
		out.ArtifactChanges[idx].Replacements = append(out.ArtifactChanges[idx].Replacements, replacement)
	}
	return out
}

// toRegion converts a range to a SARIF region. Both use 1-based lines and
// an exclusive end column.
func toRegion(rng fix.LineRange) SARIFRegion {
	return SARIFRegion{
		StartLine:   rng.Start.Line,
		StartColumn: rng.Start.Column,
		EndLine:     rng.End.Line,
		EndColumn:   rng.End.Column,
	}
}

func artifactURI(name string) string {
	return filepath.ToSlash(name)
}

// levelToSARIF converts a rustc diagnostic level to a SARIF level.
func levelToSARIF(level string) string {
	switch level {
	case "error", "error: internal compiler error":
		return "error"
	case "warning":
		return "warning"
	case "note", "help", "failure-note":
		return "note"
	case "":
		return "warning"
	default:
		return "none"
	}
}
