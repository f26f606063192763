package reporter

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// markdown parses compiler explanations. rustc writes them in CommonMark.
var markdown = goldmark.New()

// SummarizeExplanation returns the first paragraph of a Markdown explanation
// as plain text, or "" when there is none. Inline markup is dropped and line
// breaks become spaces.
func SummarizeExplanation(explanation string) string {
	source := []byte(explanation)
	doc := markdown.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	var summary string
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if para, ok := node.(*ast.Paragraph); ok {
			summary = plainText(para, source)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return summary
}

func plainText(node ast.Node, source []byte) string {
	var builder strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch leaf := n.(type) {
		case *ast.Text:
			builder.Write(leaf.Segment.Value(source))
			if leaf.SoftLineBreak() || leaf.HardLineBreak() {
				builder.WriteByte(' ')
			}
		case *ast.String:
			builder.Write(leaf.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(builder.String())
}
