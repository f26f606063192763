// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered overlays,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/rustfix/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by layering all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (RUSTFIX_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.rustfix.yml, .rustfix.yaml or rustfix.toml, upward search)
//  5. User config ($XDG_CONFIG_HOME/rustfix/config.yaml)
//  6. System config (/etc/rustfix/config.yaml)
//  7. Defaults
//
// Each file is decoded on top of the layers below it, so a file only changes
// the keys it sets and may set booleans back to false.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		ignored bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.ignored || layer.path == "" {
			continue
		}
		warnings, err := overlayFile(cfg, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads a single configuration file on top of the defaults.
func LoadFile(path string) (*config.Config, []string, error) {
	cfg := config.NewConfig()
	warnings, err := overlayFile(cfg, path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, warnings, nil
}

// overlayFile decodes the file at path onto cfg. Keys the file does not set
// keep their current value. Unknown keys are returned as warnings.
func overlayFile(cfg *config.Config, path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if IsTOMLConfig(path) {
		meta, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
		var warnings []string
		for _, key := range meta.Undecoded() {
			warnings = append(warnings, unknownKeyWarning(path, key.String()))
		}
		return warnings, nil
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	var warnings []string
	for _, key := range sortedKeys(raw) {
		if !slices.Contains(knownKeys, key) {
			warnings = append(warnings, unknownKeyWarning(path, key))
		}
	}
	return warnings, nil
}

// knownKeys are the top-level keys a config file may set.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownKeys = []string{"only", "exclude", "backups", "skip_generated", "verify_spans", "conflicts"}

func unknownKeyWarning(path, key string) string {
	return fmt.Sprintf("%s: unknown key %q; it will be ignored", filepath.Base(path), key)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
