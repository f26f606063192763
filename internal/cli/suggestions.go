package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rustfix/pkg/config"
	"github.com/yaklabco/rustfix/pkg/reporter"
)

func newSuggestionsCommand() *cobra.Command {
	var cfg config.Config
	var format string

	cmd := &cobra.Command{
		Use:   "suggestions [diagnostics.json|-]",
		Short: "List the suggestions carried by compiler diagnostics",
		Long: `List every suggestion that "rustfix fix" would try to apply, without
reading or touching any source file.

Examples:
  rustfix suggestions diags.json
  rustfix suggestions --format json - < diags.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				cfg.Format = config.OutputFormat(format)
			}
			return runSuggestions(cmd, args, &cfg)
		},
	}

	cmd.Flags().StringSliceVar(&cfg.Only, "only", nil, "only list suggestions for these diagnostic codes")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, sarif")

	return cmd
}

func runSuggestions(cmd *cobra.Command, args []string, cliCfg *config.Config) error {
	ctx := commandContext(cmd)

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

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        string(cfg.Color),
		ShowSummary:  true,
		Explanations: input.explanations,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.ReportSuggestions(ctx, input.suggestions); err != nil {
		if errors.Is(err, reporter.ErrDiffNeedsRun) {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		return fmt.Errorf("report suggestions: %w", err)
	}
	return nil
}
