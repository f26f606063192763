package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rustfix/internal/logging"
	"github.com/yaklabco/rustfix/pkg/config"
	"github.com/yaklabco/rustfix/pkg/reporter"
	"github.com/yaklabco/rustfix/pkg/runner"
)

type fixFlags struct {
	format    string
	conflicts string
	verbose   bool
	compact   bool
	noSummary bool
}

func newFixCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [diagnostics.json|-]",
		Short: "Apply suggested fixes from compiler diagnostics",
		Long:  fixLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, &cfg, flags, info)
		},
	}

	addFixFlags(cmd, &cfg, flags)

	return cmd
}

const fixLongDescription = `Apply the suggested replacements carried by compiler diagnostics.

Diagnostics are read as a stream of JSON records from the named file, or
from standard input when the argument is "-" or omitted. Only machine
applicable replacements are collected; each suggestion is applied to the
file named by its spans, relative to --root.

Examples:
  cargo build --message-format=json 2>/dev/null | jq -c 'select(.reason=="compiler-message") | .message' | rustfix fix
  rustc --error-format=json lib.rs 2> diags.json; rustfix fix diags.json
  rustfix fix --dry-run diags.json          # Show the patch without writing
  rustfix fix --only unused_mut diags.json  # Restrict to one diagnostic code
  rustfix fix --format sarif diags.json     # SARIF for code scanning`

func runFix(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *fixFlags, info BuildInfo) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("conflicts") {
		cliCfg.Conflicts = config.ConflictPolicy(flags.conflicts)
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	input, err := readSuggestions(ctx, cmd, args, cfg.Only)
	if err != nil {
		return err
	}

	opts := runner.OptionsFromConfig(cfg)
	logger.Debug("starting fix run",
		logging.FieldSuggestions, len(input.suggestions),
		logging.FieldDryRun, opts.DryRun,
		logging.FieldJobs, opts.Jobs,
		logging.FieldBackups, opts.Backup.Enabled,
	)

	result, err := runner.New(nil).Run(ctx, opts, input.suggestions)
	if err != nil {
		return errors.Join(errors.New("fix run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        string(cfg.Color),
		ShowSummary:  !flags.noSummary,
		Verbose:      flags.verbose,
		Compact:      flags.compact,
		DryRun:       cfg.DryRun,
		Explanations: input.explanations,
		ToolVersion:  info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("fix run complete",
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldApplied, result.Stats.SuggestionsApplied,
		logging.FieldSkipped, result.Stats.SuggestionsSkipped,
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFixesRemaining
	}
	return nil
}

func addFixFlags(cmd *cobra.Command, cfg *config.Config, flags *fixFlags) {
	cmd.Flags().StringSliceVar(&cfg.Only, "only", nil, "only apply suggestions for these diagnostic codes")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of files patched in parallel (0 = auto)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not write .rustfix.bak backups")
	cmd.Flags().StringSliceVar(&cfg.Exclude, "exclude", nil, "glob patterns of files never patched")
	cmd.Flags().StringVar(&cfg.Root, "root", "", "directory file names are resolved against (default: current directory)")
	cmd.Flags().StringVar(&flags.conflicts, "conflicts", "skip",
		"overlapping suggestions: skip the later one, or fail the file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list applied suggestions as well as skipped ones")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
}
