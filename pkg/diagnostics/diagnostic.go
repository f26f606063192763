// Package diagnostics defines the compiler's machine-readable diagnostic schema.
//
// The schema is the JSON emitted by rustc with --error-format=json. It is owned
// by the compiler, so the types here mirror it field for field and are only
// ever read. Required fields are enforced while decoding; unknown fields are
// ignored.
package diagnostics

import (
	"encoding/json"
	"fmt"
)

// Diagnostic is one compiler finding.
type Diagnostic struct {
	// Message is the primary message.
	Message string `json:"message"`

	// Code is the error code, if the compiler assigned one.
	Code *Code `json:"code"`

	// Level is "error: internal compiler error", "error", "warning", "note" or "help".
	Level string `json:"level"`

	// Spans are the source regions the diagnostic points at.
	Spans []Span `json:"spans"`

	// Children are the attached sub-diagnostics (notes, help, suggestions).
	Children []Diagnostic `json:"children"`

	// Rendered is the diagnostic as the compiler would print it, if provided.
	Rendered *string `json:"rendered"`
}

// Code is a diagnostic code such as "E0308" or "unused_mut".
type Code struct {
	// Code is the code itself.
	Code string `json:"code"`

	// Explanation is the long-form Markdown explanation, if any.
	Explanation *string `json:"explanation"`
}

// Span is a located region of source text.
type Span struct {
	FileName string `json:"file_name"`

	ByteStart int `json:"byte_start"`
	ByteEnd   int `json:"byte_end"`

	// LineStart and LineEnd are 1-based.
	LineStart int `json:"line_start"`
	LineEnd   int `json:"line_end"`

	// ColumnStart and ColumnEnd are 1-based character offsets.
	ColumnStart int `json:"column_start"`
	ColumnEnd   int `json:"column_end"`

	// IsPrimary marks the point (or one of the points) where the error occurred.
	IsPrimary bool `json:"is_primary"`

	// Text is the source from the start of LineStart to the end of LineEnd.
	Text []SpanLine `json:"text"`

	// Label is placed at this location when rendering.
	Label *string `json:"label"`

	// SuggestedReplacement is the text that should be sliced in atop this span.
	SuggestedReplacement *string `json:"suggested_replacement"`

	// Expansion is the macro invocation that produced this span, if any.
	Expansion *MacroExpansion `json:"expansion"`
}

// SpanLine is one physical line of a span's source text.
type SpanLine struct {
	Text string `json:"text"`

	// HighlightStart and HighlightEnd are 1-based character offsets into Text.
	HighlightStart int `json:"highlight_start"`
	HighlightEnd   int `json:"highlight_end"`
}

// MacroExpansion records the macro invocation that generated a span.
type MacroExpansion struct {
	// Span is where the macro was applied. It may itself come from a macro.
	Span Span `json:"span"`

	// MacroDeclName is e.g. "foo!" or "#[derive(Eq)]".
	MacroDeclName string `json:"macro_decl_name"`

	// DefSiteSpan is where the macro was defined, if known.
	DefSiteSpan *Span `json:"def_site_span"`
}

// MissingFieldError reports a record that lacks a required field.
type MissingFieldError struct {
	// Record names the record type ("diagnostic", "span", ...).
	Record string

	// Field is the JSON name of the missing field.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q in %s", e.Field, e.Record)
}

type requiredField struct {
	name    string
	present bool
}

func checkRequired(record string, fields ...requiredField) error {
	for _, f := range fields {
		if !f.present {
			return &MissingFieldError{Record: record, Field: f.name}
		}
	}
	return nil
}

// UnmarshalJSON decodes a diagnostic, rejecting records without required fields.
func (d *Diagnostic) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message  *string       `json:"message"`
		Code     *Code         `json:"code"`
		Level    *string       `json:"level"`
		Spans    *[]Span       `json:"spans"`
		Children *[]Diagnostic `json:"children"`
		Rendered *string       `json:"rendered"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	err := checkRequired("diagnostic",
		requiredField{"message", raw.Message != nil},
		requiredField{"level", raw.Level != nil},
		requiredField{"spans", raw.Spans != nil},
		requiredField{"children", raw.Children != nil},
	)
	if err != nil {
		return err
	}

	*d = Diagnostic{
		Message:  *raw.Message,
		Code:     raw.Code,
		Level:    *raw.Level,
		Spans:    *raw.Spans,
		Children: *raw.Children,
		Rendered: raw.Rendered,
	}
	return nil
}

// UnmarshalJSON decodes a code, rejecting records without the code itself.
func (c *Code) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code        *string `json:"code"`
		Explanation *string `json:"explanation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := checkRequired("code", requiredField{"code", raw.Code != nil}); err != nil {
		return err
	}

	*c = Code{Code: *raw.Code, Explanation: raw.Explanation}
	return nil
}

// UnmarshalJSON decodes a span, rejecting records without required fields.
func (s *Span) UnmarshalJSON(data []byte) error {
	var raw struct {
		FileName             *string         `json:"file_name"`
		ByteStart            *int            `json:"byte_start"`
		ByteEnd              *int            `json:"byte_end"`
		LineStart            *int            `json:"line_start"`
		LineEnd              *int            `json:"line_end"`
		ColumnStart          *int            `json:"column_start"`
		ColumnEnd            *int            `json:"column_end"`
		IsPrimary            *bool           `json:"is_primary"`
		Text                 *[]SpanLine     `json:"text"`
		Label                *string         `json:"label"`
		SuggestedReplacement *string         `json:"suggested_replacement"`
		Expansion            *MacroExpansion `json:"expansion"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	err := checkRequired("span",
		requiredField{"file_name", raw.FileName != nil},
		requiredField{"byte_start", raw.ByteStart != nil},
		requiredField{"byte_end", raw.ByteEnd != nil},
		requiredField{"line_start", raw.LineStart != nil},
		requiredField{"line_end", raw.LineEnd != nil},
		requiredField{"column_start", raw.ColumnStart != nil},
		requiredField{"column_end", raw.ColumnEnd != nil},
		requiredField{"is_primary", raw.IsPrimary != nil},
		requiredField{"text", raw.Text != nil},
	)
	if err != nil {
		return err
	}

	*s = Span{
		FileName:             *raw.FileName,
		ByteStart:            *raw.ByteStart,
		ByteEnd:              *raw.ByteEnd,
		LineStart:            *raw.LineStart,
		LineEnd:              *raw.LineEnd,
		ColumnStart:          *raw.ColumnStart,
		ColumnEnd:            *raw.ColumnEnd,
		IsPrimary:            *raw.IsPrimary,
		Text:                 *raw.Text,
		Label:                raw.Label,
		SuggestedReplacement: raw.SuggestedReplacement,
		Expansion:            raw.Expansion,
	}
	return nil
}

// UnmarshalJSON decodes a span line, rejecting records without required fields.
func (l *SpanLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text           *string `json:"text"`
		HighlightStart *int    `json:"highlight_start"`
		HighlightEnd   *int    `json:"highlight_end"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	err := checkRequired("span line",
		requiredField{"text", raw.Text != nil},
		requiredField{"highlight_start", raw.HighlightStart != nil},
		requiredField{"highlight_end", raw.HighlightEnd != nil},
	)
	if err != nil {
		return err
	}

	*l = SpanLine{Text: *raw.Text, HighlightStart: *raw.HighlightStart, HighlightEnd: *raw.HighlightEnd}
	return nil
}

// UnmarshalJSON decodes a macro expansion, rejecting records without required fields.
func (m *MacroExpansion) UnmarshalJSON(data []byte) error {
	var raw struct {
		Span          *Span   `json:"span"`
		MacroDeclName *string `json:"macro_decl_name"`
		DefSiteSpan   *Span   `json:"def_site_span"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	err := checkRequired("macro expansion",
		requiredField{"span", raw.Span != nil},
		requiredField{"macro_decl_name", raw.MacroDeclName != nil},
	)
	if err != nil {
		return err
	}

	*m = MacroExpansion{Span: *raw.Span, MacroDeclName: *raw.MacroDeclName, DefSiteSpan: raw.DefSiteSpan}
	return nil
}

// CodeString returns the diagnostic's code, or "" when it has none.
func (d *Diagnostic) CodeString() string {
	if d.Code == nil {
		return ""
	}
	return d.Code.Code
}

// PrimarySpans returns the spans marked primary, in order.
func (d *Diagnostic) PrimarySpans() []Span {
	var out []Span
	for _, span := range d.Spans {
		if span.IsPrimary {
			out = append(out, span)
		}
	}
	return out
}
