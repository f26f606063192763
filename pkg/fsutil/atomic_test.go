package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rustfix/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "lib.rs")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("fn a() {}\n"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "fn a() {}\n", string(got))

		if runtime.GOOS != "windows" {
			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
		}
	})

	t.Run("replaces file and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeTestFile(t, dir, "lib.rs", "old\n")

		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new\n"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new\n", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "lib.rs")
		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		path := filepath.Join(t.TempDir(), "lib.rs")
		require.ErrorIs(t, fsutil.WriteAtomic(cancelled, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestReplaceFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeTestFile(t, t.TempDir(), "main.rs", "let mut x = 3;\n")
	require.NoError(t, os.Chmod(path, 0o600))

	_, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	require.NoError(t, fsutil.ReplaceFile(ctx, info, []byte("let x = 3;\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "let x = 3;\n", string(got))

	if runtime.GOOS != "windows" {
		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	}

	require.ErrorIs(t, fsutil.ReplaceFile(ctx, nil, nil), fsutil.ErrNilFileInfo)
}
