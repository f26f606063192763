// Package config defines core configuration types for rustfix.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

// BackupsConfig controls backup behavior when patching files.
type BackupsConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Mode    string `toml:"mode"    yaml:"mode"` // "sidecar" or "none"
}

// Backup modes.
const (
	// BackupModeSidecar writes the backup next to the patched file.
	BackupModeSidecar = "sidecar"
	// BackupModeNone disables backups.
	BackupModeNone = "none"
)

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
	FormatDiff  OutputFormat = "diff"
)

// ConflictPolicy decides what happens to suggestions that overlap an earlier one.
type ConflictPolicy string

const (
	// ConflictsSkip drops the later suggestion and patches the rest of the file.
	ConflictsSkip ConflictPolicy = "skip"
	// ConflictsFail leaves the file untouched and reports an error.
	ConflictsFail ConflictPolicy = "fail"
)

// IsValid returns true if the policy is known.
func (p ConflictPolicy) IsValid() bool {
	switch p {
	case ConflictsSkip, ConflictsFail:
		return true
	default:
		return false
	}
}

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for rustfix.
type Config struct {
	// Only limits fixing to these diagnostic codes. Empty means every code.
	Only []string `toml:"only" yaml:"only"`

	// Exclude contains doublestar glob patterns of files that are never patched.
	Exclude []string `toml:"exclude" yaml:"exclude"`

	// Backups configures backup behavior when patching.
	Backups BackupsConfig `toml:"backups" yaml:"backups"`

	// SkipGenerated leaves generated source files untouched.
	SkipGenerated bool `toml:"skip_generated" yaml:"skip_generated"`

	// VerifySpans checks that every replacement's byte offsets and line/column
	// coordinates select the same text before patching.
	VerifySpans bool `toml:"verify_spans" yaml:"verify_spans"`

	// Conflicts is the policy for overlapping suggestions.
	Conflicts ConflictPolicy `toml:"conflicts" yaml:"conflicts"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would be fixed without making changes.
	DryRun bool `toml:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `toml:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `toml:"-" yaml:"-"`

	// Color controls colored output.
	Color ColorMode `toml:"-" yaml:"-"`

	// Root is the directory relative file names are resolved against.
	Root string `toml:"-" yaml:"-"`

	// NoBackups disables backup creation regardless of Backups.Enabled.
	NoBackups bool `toml:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		SkipGenerated: true,
		VerifySpans:   true,
		Conflicts:     ConflictsSkip,
		Format:        FormatText,
		Color:         ColorAuto,
		Jobs:          0,
	}
}

// BackupsEnabled reports whether backups should be written.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && c.Backups.Mode != BackupModeNone && !c.NoBackups
}
