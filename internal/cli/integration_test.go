package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rustfix/internal/cli"
	"github.com/yaklabco/rustfix/pkg/reporter"
)

const (
	libSource = "pub fn foo() -> u32 { let mut x = 3; x }\n"
	libFixed  = "pub fn foo() -> u32 { let x = 3; x }\n"
	libLine   = "pub fn foo() -> u32 { let mut x = 3; x }"
)

// unusedMutDiagnostic suggests replacing "let mut x = 3;" with "let x = 3;" in file.
func unusedMutDiagnostic(file string) string {
	span := func(start, end, colStart, colEnd int, replacement string) string {
		return `{"file_name":"` + file + `","byte_start":` + itoa(start) + `,"byte_end":` + itoa(end) +
			`,"line_start":1,"line_end":1,"column_start":` + itoa(colStart) + `,"column_end":` + itoa(colEnd) +
			`,"is_primary":true,"text":[{"text":"` + libLine + `","highlight_start":` + itoa(colStart) +
			`,"highlight_end":` + itoa(colEnd) + `}],"label":null,"suggested_replacement":` + replacement +
			`,"expansion":null}`
	}

	return `{"message":"variable does not need to be mutable",` +
		`"code":{"code":"unused_mut","explanation":"A variable was declared mutable but never mutated.\n\nMore text."},` +
		`"level":"warning","spans":[` + span(26, 31, 27, 32, "null") + `],` +
		`"children":[{"message":"remove this mut","code":null,"level":"help","spans":[` +
		span(22, 36, 23, 37, `"let x = 3;"`) + `],"children":[],"rendered":null}],"rendered":null}` + "\n"
}

func itoa(n int) string { return strconv.Itoa(n) }

// fixture lays out a crate with src/lib.rs and a diagnostics file naming it.
type fixture struct {
	root  string
	lib   string
	diags string
}

func newFixture(t *testing.T, records ...string) fixture {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))

	lib := filepath.Join(root, "src", "lib.rs")
	require.NoError(t, os.WriteFile(lib, []byte(libSource), 0o644))

	if len(records) == 0 {
		records = []string{unusedMutDiagnostic("src/lib.rs")}
	}
	diags := filepath.Join(root, "diagnostics.json")
	require.NoError(t, os.WriteFile(diags, []byte(strings.Join(records, "")), 0o644))

	return fixture{root: root, lib: lib, diags: diags}
}

func (f fixture) libContent(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.lib)
	require.NoError(t, err)
	return string(data)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCommand(testInfo)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestIntegration_FixAppliesSuggestion(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	out, err := execute(t, "", "fix", "--root", fx.root, fx.diags)
	require.NoError(t, err)

	assert.Equal(t, libFixed, fx.libContent(t))
	assert.Contains(t, out, "1 suggestion applied in 1 file")

	backup, err := os.ReadFile(fx.lib + ".rustfix.bak")
	require.NoError(t, err)
	assert.Equal(t, libSource, string(backup))
}

func TestIntegration_FixNoBackups(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	_, err := execute(t, "", "fix", "--root", fx.root, "--no-backups", fx.diags)
	require.NoError(t, err)

	assert.Equal(t, libFixed, fx.libContent(t))
	assert.NoFileExists(t, fx.lib+".rustfix.bak")
}

func TestIntegration_FixReadsStdin(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	_, err := execute(t, unusedMutDiagnostic("src/lib.rs"), "fix", "--root", fx.root, "--no-backups", "-")
	require.NoError(t, err)
	assert.Equal(t, libFixed, fx.libContent(t))
}

func TestIntegration_DryRunDiff(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	out, err := execute(t, "", "fix", "--root", fx.root, "--dry-run", "--format", "diff", fx.diags)
	require.NoError(t, err)

	assert.Equal(t, libSource, fx.libContent(t), "dry run must not write")
	assert.NoFileExists(t, fx.lib+".rustfix.bak")
	assert.Contains(t, out, "-"+libLine)
	assert.Contains(t, out, "+pub fn foo() -> u32 { let x = 3; x }")
}

func TestIntegration_OnlyFiltersCodes(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	out, err := execute(t, "", "fix", "--root", fx.root, "--only", "E0308", fx.diags)
	require.NoError(t, err)

	assert.Equal(t, libSource, fx.libContent(t))
	assert.Contains(t, out, "No fixes to apply")
}

func TestIntegration_ConfigFileOnly(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	cfgPath := filepath.Join(fx.root, "custom.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("only:\n  - unused_variables\n"), 0o644))

	_, err := execute(t, "", "--config", cfgPath, "fix", "--root", fx.root, fx.diags)
	require.NoError(t, err)
	assert.Equal(t, libSource, fx.libContent(t))

	// Flags override the file.
	_, err = execute(t, "", "--config", cfgPath, "fix", "--root", fx.root, "--only", "unused_mut", fx.diags)
	require.NoError(t, err)
	assert.Equal(t, libFixed, fx.libContent(t))
}

func TestIntegration_InvalidConfigValue(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	cfgPath := filepath.Join(fx.root, "bad.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("conflicts: explode\n"), 0o644))

	_, err := execute(t, "", "--config", cfgPath, "fix", "--root", fx.root, fx.diags)
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataError, cli.ExitCodeFromError(err))
	assert.Equal(t, libSource, fx.libContent(t))
}

func TestIntegration_MissingSourceFile(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unusedMutDiagnostic("src/missing.rs"))

	out, err := execute(t, "", "fix", "--root", fx.root, fx.diags)
	require.ErrorIs(t, err, cli.ErrFixesRemaining)
	assert.Equal(t, cli.ExitFixesRemaining, cli.ExitCodeFromError(err))
	assert.Contains(t, out, "src/missing.rs")
}

func TestIntegration_ExcludedFile(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	out, err := execute(t, "", "fix", "--root", fx.root, "--exclude", "src", fx.diags)
	require.ErrorIs(t, err, cli.ErrFixesRemaining)
	assert.Equal(t, libSource, fx.libContent(t))
	assert.Contains(t, out, "excluded")
}

func TestIntegration_JSONOutput(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	out, err := execute(t, "", "fix", "--root", fx.root, "--dry-run", "--format", "json", fx.diags)
	require.NoError(t, err)

	var report reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, testInfo.Version, report.Version)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Summary.SuggestionsApplied)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "src/lib.rs", report.Files[0].Name)
	assert.Contains(t, report.Files[0].Diff, "+pub fn foo() -> u32 { let x = 3; x }")
}

func TestIntegration_SARIFOutput(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	out, err := execute(t, "", "fix", "--root", fx.root, "--dry-run", "--format", "sarif", fx.diags)
	require.NoError(t, err)

	assert.Contains(t, out, `"unused_mut"`)
	assert.Contains(t, out, "A variable was declared mutable but never mutated.")
}

func TestIntegration_MalformedDiagnostics(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, `{"message": "truncated`)

	_, err := execute(t, "", "fix", "--root", fx.root, fx.diags)
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataError, cli.ExitCodeFromError(err))
	assert.Equal(t, libSource, fx.libContent(t))
}

func TestIntegration_MissingDiagnosticsFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "fix", filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, cli.ErrInput)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	_, err := execute(t, "", "fix", "--root", fx.root, "--format", "table", fx.diags)
	require.Error(t, err)
	assert.Equal(t, libSource, fx.libContent(t))
}

func TestIntegration_SuggestionsCommand(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	out, err := execute(t, "", "suggestions", fx.diags)
	require.NoError(t, err)

	assert.Contains(t, out, "src/lib.rs")
	assert.Contains(t, out, "unused_mut")
	assert.Contains(t, out, "1 suggestion in 1 file")
	assert.Equal(t, libSource, fx.libContent(t))
}

func TestIntegration_SuggestionsJSON(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	out, err := execute(t, "", "suggestions", "--format", "json", fx.diags)
	require.NoError(t, err)

	var list reporter.JSONSuggestionList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Suggestions, 1)
	require.Len(t, list.Suggestions[0].Solutions, 1)
	replacements := list.Suggestions[0].Solutions[0].Replacements
	require.Len(t, replacements, 1)
	assert.Equal(t, "let x = 3;", replacements[0].Replacement)
}

func TestIntegration_SuggestionsRejectsDiff(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	_, err := execute(t, "", "suggestions", "--format", "diff", fx.diags)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_InitCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, ".rustfix.yml")

	_, err := execute(t, "", "init", "--output", yamlPath, "--only", "unused_mut")
	require.NoError(t, err)

	content, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "- unused_mut")

	_, err = execute(t, "", "init", "--output", yamlPath)
	require.ErrorIs(t, err, cli.ErrInvalidUsage, "existing file needs --force")

	_, err = execute(t, "", "init", "--output", yamlPath, "--force")
	require.NoError(t, err)

	tomlPath := filepath.Join(dir, "rustfix.toml")
	_, err = execute(t, "", "init", "--format", "toml", "--output", tomlPath)
	require.NoError(t, err)
	assert.FileExists(t, tomlPath)

	_, err = execute(t, "", "init", "--format", "ini", "--output", filepath.Join(dir, "x.ini"))
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_RestoreUndoesFix(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	_, err := execute(t, "", "fix", "--root", fx.root, fx.diags)
	require.NoError(t, err)
	require.Equal(t, libFixed, fx.libContent(t))

	out, err := execute(t, "", "restore", fx.lib)
	require.NoError(t, err)
	assert.Contains(t, out, "restored "+fx.lib)
	assert.Equal(t, libSource, fx.libContent(t))
	assert.NoFileExists(t, fx.lib+".rustfix.bak")

	_, err = execute(t, "", "restore", fx.lib)
	require.ErrorIs(t, err, cli.ErrInput, "backup was removed by the first restore")
}

func TestIntegration_RestoreKeep(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	_, err := execute(t, "", "fix", "--root", fx.root, fx.diags)
	require.NoError(t, err)

	_, err = execute(t, "", "restore", "--keep", fx.lib)
	require.NoError(t, err)
	assert.Equal(t, libSource, fx.libContent(t))
	assert.FileExists(t, fx.lib+".rustfix.bak")
}
