package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/rustfix/internal/configloader"
	"github.com/yaklabco/rustfix/internal/logging"
	"github.com/yaklabco/rustfix/pkg/config"
	"github.com/yaklabco/rustfix/pkg/diagnostics"
	"github.com/yaklabco/rustfix/pkg/fix"
)

// stdinArg names standard input as the diagnostics source.
const stdinArg = "-"

// loadConfig layers the configuration sources under the values set by flags.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	if cmd.Flags().Changed("color") {
		color, _ := cmd.Flags().GetString("color")
		cliCfg.Color = config.ColorMode(color)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		var validationErr *configloader.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, result.LoadedFrom)
	}

	return result.Config, nil
}

// openInput returns the diagnostics stream named by args: a file path, "-",
// or standard input when no argument is given. A terminal is refused so the
// command does not block waiting for typed JSON.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == stdinArg {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, "", fmt.Errorf("%w: no diagnostics file given and standard input is a terminal", ErrInvalidUsage)
		}
		return io.NopCloser(in), "<stdin>", nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInput, err)
	}
	return f, args[0], nil
}

// collected holds everything extracted from one diagnostics stream.
type collected struct {
	suggestions  []fix.Suggestion
	explanations map[string]string
	diagnostics  int
}

// collectSuggestions decodes every record from r and extracts the suggestions
// allowed by only. Code explanations are kept for reporters that show them.
func collectSuggestions(ctx context.Context, r io.Reader, source string, only fix.CodeSet) (*collected, error) {
	logger := logging.FromContext(ctx)
	dec := diagnostics.NewDecoder(r)
	out := &collected{explanations: make(map[string]string)}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		diag, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		out.diagnostics++

		if diag.Code != nil && diag.Code.Explanation != nil {
			out.explanations[diag.Code.Code] = *diag.Code.Explanation
		}

		sug, err := fix.CollectSuggestions(&diag, only)
		if err != nil {
			return nil, fmt.Errorf("%s: diagnostic %d: %w", source, out.diagnostics, err)
		}
		if sug == nil {
			continue
		}
		logger.Debug("collected suggestion",
			logging.FieldCode, diag.CodeString(),
			logging.FieldReplacements, len(fix.Flatten([]fix.Suggestion{*sug})),
		)
		out.suggestions = append(out.suggestions, *sug)
	}

	logger.Debug("decoded diagnostics",
		logging.FieldInput, source,
		logging.FieldDiagnostics, out.diagnostics,
		logging.FieldSuggestions, len(out.suggestions),
	)
	return out, nil
}

// readSuggestions opens the input named by args and collects its suggestions.
func readSuggestions(ctx context.Context, cmd *cobra.Command, args []string, only []string) (*collected, error) {
	in, source, err := openInput(cmd, args)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	return collectSuggestions(ctx, in, source, fix.NewCodeSet(only...))
}

// commandContext returns the command's context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}
