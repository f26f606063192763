package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rustfix/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"text", "text", config.FormatText, false},
		{"json uppercase", "JSON", config.FormatJSON, false},
		{"sarif padded", " sarif ", config.FormatSARIF, false},
		{"diff", "diff", config.FormatDiff, false},
		{"empty defaults to text", "", config.FormatText, false},
		{"table is not supported", "table", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicies(t *testing.T) {
	t.Parallel()

	assert.True(t, config.ConflictsSkip.IsValid())
	assert.True(t, config.ConflictsFail.IsValid())
	assert.False(t, config.ConflictPolicy("merge").IsValid())

	assert.True(t, config.ColorNever.IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.BackupsEnabled())
	assert.Equal(t, config.BackupModeSidecar, cfg.Backups.Mode)
	assert.Equal(t, config.ConflictsSkip, cfg.Conflicts)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.True(t, cfg.SkipGenerated)
	assert.True(t, cfg.VerifySpans)

	cfg.NoBackups = true
	assert.False(t, cfg.BackupsEnabled())
}
