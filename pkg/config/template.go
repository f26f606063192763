package config

import (
	"bytes"
	"fmt"
	"strings"
)

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "toml".
	Format string

	// Only pre-fills the code allow-list.
	Only []string
}

// GenerateTemplate creates a commented configuration file holding the defaults.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return yamlTemplate(opts), nil
	case TemplateTOML:
		return tomlTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}
}

// TemplateFileName returns the project config file name for a template format.
func TemplateFileName(format string) string {
	if format == TemplateTOML {
		return "rustfix.toml"
	}
	return ".rustfix.yml"
}

func yamlTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n# Only apply suggestions for these diagnostic codes (empty = all)\n")
	if len(opts.Only) == 0 {
		buf.WriteString("# only:\n#   - unused_mut\n")
	} else {
		buf.WriteString("only:\n")
		for _, code := range opts.Only {
			fmt.Fprintf(&buf, "  - %s\n", code)
		}
	}

	buf.WriteString(`
# Files that are never patched (doublestar globs, relative to the root)
# exclude:
#   - "vendor/**"
#   - "target/**"

# Keep a sidecar copy of every patched file
backups:
  enabled: true
  mode: sidecar

# Leave generated sources untouched
skip_generated: true

# Check that byte offsets and line/column coordinates agree before patching
verify_spans: true

# Overlapping suggestions: skip (patch the rest) or fail (leave the file)
conflicts: skip
`)

	return buf.Bytes()
}

func tomlTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n# Only apply suggestions for these diagnostic codes (empty = all)\n")
	if len(opts.Only) == 0 {
		buf.WriteString("# only = [\"unused_mut\"]\n")
	} else {
		quoted := make([]string, len(opts.Only))
		for idx, code := range opts.Only {
			quoted[idx] = fmt.Sprintf("%q", code)
		}
		fmt.Fprintf(&buf, "only = [%s]\n", strings.Join(quoted, ", "))
	}

	buf.WriteString(`
# Files that are never patched (doublestar globs, relative to the root)
# exclude = ["vendor/**", "target/**"]

# Leave generated sources untouched
skip_generated = true

# Check that byte offsets and line/column coordinates agree before patching
verify_spans = true

# Overlapping suggestions: skip (patch the rest) or fail (leave the file)
conflicts = "skip"

# Keep a sidecar copy of every patched file
[backups]
enabled = true
mode = "sidecar"
`)

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# rustfix configuration
# See: https://github.com/yaklabco/rustfix`
}
