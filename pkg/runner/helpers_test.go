package runner_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rustfix/pkg/fix"
	"github.com/yaklabco/rustfix/pkg/fsutil"
	"github.com/yaklabco/rustfix/pkg/runner"
)

const libSource = "pub fn foo() -> u32 {\n    let mut x = 3;\n    x\n}\n"

// removeMut is the suggestion rustc makes for libSource's unused `mut`.
func removeMut(name string) fix.Suggestion {
	return suggestionAt(name, libSource, 2, 9, 13, "", "unused_mut")
}

// suggestionAt builds a single-line replacement of columns c1..c2 of line,
// with byte offsets computed from content.
func suggestionAt(name, content string, line, c1, c2 int, text, code string) fix.Suggestion {
	lines := strings.SplitAfter(content, "\n")
	offset := 0
	for _, l := range lines[:line-1] {
		offset += len(l)
	}
	runes := []rune(lines[line-1])

	return fix.Suggestion{
		Message: "variable does not need to be mutable",
		Code:    code,
		Level:   "warning",
		Solutions: []fix.Solution{{
			Message: "remove this `mut`",
			Replacements: []fix.Replacement{{
				Snippet: fix.Snippet{
					FileName: name,
					LineRange: fix.LineRange{
						Start: fix.LinePosition{Line: line, Column: c1},
						End:   fix.LinePosition{Line: line, Column: c2},
					},
					ByteRange: fix.ByteRange{
						Start: offset + len(string(runes[:c1-1])),
						End:   offset + len(string(runes[:c2-1])),
					},
				},
				Replacement: text,
			}},
		}},
	}
}

func writeFile(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func testOptions(root string) runner.Options {
	opts := runner.DefaultOptions()
	opts.Root = root
	opts.Jobs = 2
	opts.Backup = fsutil.BackupConfig{Enabled: false, Mode: fsutil.BackupModeNone}
	return opts
}
