package configloader

import "github.com/yaklabco/rustfix/pkg/config"

// merge applies CLI overrides to base and returns the result.
// Flags can only switch behavior on or supply a value, so:
//   - Scalars: override overwrites base if override is non-zero
//   - Booleans: only true overrides
//   - Slices: override replaces base entirely if non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Conflicts != "" {
		result.Conflicts = override.Conflicts
	}
	if override.Root != "" {
		result.Root = override.Root
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Only != nil {
		result.Only = override.Only
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
