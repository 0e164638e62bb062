package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup, like testing.T.Chdir on toolchains that have it.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestFindWasmFile(t *testing.T) {
	t.Run("finds a file in the current directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "engine.wasm"), []byte("\x00asm"), 0o644))
		chdir(t, dir)

		path, err := FindWasmFile(nil, "engine.wasm")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(path))
		assert.Equal(t, "engine.wasm", filepath.Base(path))
	})

	t.Run("finds a file under testdata", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "testdata"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "testdata", "engine.wasm"), []byte("\x00asm"), 0o644))
		chdir(t, dir)

		path, err := FindWasmFile(nil, "engine.wasm")
		require.NoError(t, err)
		assert.Contains(t, path, "testdata")
	})

	t.Run("missing file lists the checked paths", func(t *testing.T) {
		chdir(t, t.TempDir())

		_, err := FindWasmFile(nil, "nowhere.wasm")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nowhere.wasm")
		assert.Contains(t, err.Error(), "testdata")
	})
}
