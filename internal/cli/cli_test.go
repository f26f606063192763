package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rustfix/internal/cli"
	"github.com/yaklabco/rustfix/internal/configloader"
	"github.com/yaklabco/rustfix/pkg/diagnostics"
	"github.com/yaklabco/rustfix/pkg/runner"
)

var testInfo = cli.BuildInfo{
	Version: "1.0.0-test",
	Commit:  "abc123",
	Date:    "2024-01-01",
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "rustfix", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"fix", "suggestions", "restore", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestFixCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	fixCmd, _, err := cmd.Find([]string{"fix"})
	require.NoError(t, err)

	for _, name := range []string{
		"only", "dry-run", "format", "jobs", "no-backups",
		"exclude", "root", "conflicts", "verbose", "compact", "no-summary",
	} {
		assert.NotNil(t, fixCmd.Flags().Lookup(name), "missing flag --%s", name)
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag --%s", name)
	}
	assert.Equal(t, "auto", cmd.PersistentFlags().Lookup("color").DefValue)
}

func TestFixCommandRejectsExtraArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fix", "a.json", "b.json"})

	assert.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := cli.NewRootCommand(testInfo)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "rustfix")
	assert.Contains(t, out.String(), "1.0.0-test")
	assert.Contains(t, out.String(), "abc123")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := cli.NewRootCommand(testInfo)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fix", "--help"})

	require.NoError(t, cmd.Execute())
	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "rustfix fix [diagnostics.json|-]")
	assert.Contains(t, help, "--dry-run")
	assert.Contains(t, help, "Global Flags:")
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   int
	}{
		{name: "nil result", result: nil, want: cli.ExitSuccess},
		{name: "everything applied", result: &runner.Result{
			Stats: runner.Stats{SuggestionsTotal: 2, SuggestionsApplied: 2},
		}, want: cli.ExitSuccess},
		{name: "suggestions skipped", result: &runner.Result{
			Stats: runner.Stats{SuggestionsTotal: 2, SuggestionsApplied: 1, SuggestionsSkipped: 1},
		}, want: cli.ExitFixesRemaining},
		{name: "file failed", result: &runner.Result{
			Stats: runner.Stats{FilesErrored: 1},
		}, want: cli.ExitFixesRemaining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result))
		})
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "fixes remaining", err: cli.ErrFixesRemaining, want: cli.ExitFixesRemaining},
		{name: "usage", err: fmt.Errorf("%w: bad flag", cli.ErrInvalidUsage), want: cli.ExitInvalidUsage},
		{name: "config", err: fmt.Errorf("%w: broken", cli.ErrConfig), want: cli.ExitDataError},
		{name: "validation", err: &configloader.ValidationError{Field: "conflicts"}, want: cli.ExitDataError},
		{name: "decode", err: fmt.Errorf("in.json: %w",
			&diagnostics.DecodeError{Record: 1, Err: errors.New("unexpected EOF")}), want: cli.ExitDataError},
		{name: "input", err: fmt.Errorf("%w: no such file", cli.ErrInput), want: cli.ExitIOError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}
