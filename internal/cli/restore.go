package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rustfix/internal/logging"
	"github.com/yaklabco/rustfix/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "restore <file>...",
		Short: "Undo fixes by restoring .rustfix.bak backups",
		Long: `Copy each file's sidecar backup back over it. The backup holds the
content from before the first fix, so this undoes every run since.

Examples:
  rustfix restore src/lib.rs
  rustfix restore --keep src/lib.rs src/main.rs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, keep)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "keep the backup after restoring")

	return cmd
}

func runRestore(cmd *cobra.Command, paths []string, keep bool) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	var missing int
	for _, path := range paths {
		restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInput, err)
		}
		if !restored {
			missing++
			logger.Warn("no backup to restore", logging.FieldPath, path)
			continue
		}

		if !keep {
			if _, err := fsutil.RemoveBackup(path, fsutil.BackupModeSidecar); err != nil {
				return fmt.Errorf("remove backup: %w", err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", path)
	}

	if missing > 0 {
		return fmt.Errorf("%w: %d of %d files had no backup", ErrInput, missing, len(paths))
	}
	return nil
}
