package cli

import (
	"errors"

	"github.com/yaklabco/rustfix/internal/configloader"
	"github.com/yaklabco/rustfix/pkg/diagnostics"
	"github.com/yaklabco/rustfix/pkg/runner"
)

// Exit codes for rustfix. The non-zero values follow sysexits.h.
const (
	// ExitSuccess indicates every suggestion was applied, or there was nothing to apply.
	ExitSuccess = 0

	// ExitFixesRemaining indicates some suggestions were not applied or a file failed.
	ExitFixesRemaining = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates a malformed configuration file or diagnostics stream.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates the diagnostics input could not be read.
	ExitIOError = 74
)

var (
	// ErrFixesRemaining is returned when a run left suggestions unapplied.
	// It only selects the exit code and is never logged.
	ErrFixesRemaining = errors.New("suggestions remain unapplied")

	// ErrInvalidUsage is returned for bad arguments or flag values.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig is returned when configuration cannot be loaded.
	ErrConfig = errors.New("configuration error")

	// ErrInput is returned when the diagnostics input cannot be read.
	ErrInput = errors.New("cannot read diagnostics")
)

// ExitCodeFromResult determines the exit code of a fix run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() || result.Remaining() {
		return ExitFixesRemaining
	}
	return ExitSuccess
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var decodeErr *diagnostics.DecodeError
	var missingErr *diagnostics.MissingFieldError
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFixesRemaining):
		return ExitFixesRemaining
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr), errors.Is(err, ErrConfig):
		return ExitDataError
	case errors.As(err, &decodeErr), errors.As(err, &missingErr):
		return ExitDataError
	case errors.Is(err, ErrInput):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
