package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Verbose lists every applied suggestion, not just the skipped ones.
	Verbose bool

	// Compact uses minified output where applicable.
	Compact bool

	// DryRun words the output for a run that wrote nothing.
	DryRun bool

	// Explanations maps diagnostic codes to their Markdown explanations.
	Explanations map[string]string

	// ToolVersion is reported in JSON and SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		ToolVersion: "dev",
	}
}
