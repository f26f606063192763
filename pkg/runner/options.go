// Package runner applies suggestions to the files they target, one pipeline
// per file, in parallel.
package runner

import (
	"github.com/yaklabco/rustfix/pkg/config"
	"github.com/yaklabco/rustfix/pkg/fsutil"
)

// Options controls how suggestions are applied to files.
type Options struct {
	// Root is the directory file names in diagnostics are resolved against.
	// Files outside it are never patched. Empty means the current directory.
	Root string

	// Exclude are doublestar glob patterns, relative to Root, of files that
	// are never patched.
	Exclude []string

	// Jobs limits how many files are processed at once.
	// 0 or negative means runtime.GOMAXPROCS.
	Jobs int

	// DryRun computes diffs without writing files.
	DryRun bool

	// Backup configures backups taken before a file is rewritten.
	Backup fsutil.BackupConfig

	// SkipGenerated leaves generated files untouched.
	SkipGenerated bool

	// VerifySpans skips suggestions whose byte offsets and line/column
	// coordinates disagree about the text they replace.
	VerifySpans bool

	// Conflicts decides what happens when suggestions overlap.
	Conflicts config.ConflictPolicy
}

// DefaultOptions returns the options of a default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewConfig())
}

// OptionsFromConfig creates Options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Root:          cfg.Root,
		Exclude:       cfg.Exclude,
		Jobs:          cfg.Jobs,
		DryRun:        cfg.DryRun,
		Backup:        fsutil.NewBackupConfig(cfg.BackupsEnabled(), cfg.Backups.Mode),
		SkipGenerated: cfg.SkipGenerated,
		VerifySpans:   cfg.VerifySpans,
		Conflicts:     cfg.Conflicts,
	}
}
