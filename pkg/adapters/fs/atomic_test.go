package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestReplaceFile(t *testing.T) {
	t.Run("creates, overwrites and leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "notes.json")

		require.NoError(t, replaceFile(path, "[]"))
		assert.Equal(t, "[]", readString(t, path))

		require.NoError(t, replaceFile(path, `[{"id":"a"}]`))
		assert.Equal(t, `[{"id":"a"}]`, readString(t, path))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "notes.json", entries[0].Name())

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm()&0644)
	})

	t.Run("creates a missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deeper", "notes.json")
		require.NoError(t, replaceFile(path, "x"))
		assert.Equal(t, "x", readString(t, path))
	})

	t.Run("fails when the target is a directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "notes.json")
		require.NoError(t, os.Mkdir(path, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0644))

		err := replaceFile(path, "x")
		assert.ErrorContains(t, err, "rename into place")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "temp file left behind: %s", e.Name())
		}
	})
}

func TestSweepTempFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{TempFilePrefix + "1", TempFilePrefix + "2", "notes.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, TempFilePrefix+"dir"), 0755))

	removed, err := sweepTempFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"notes.json", TempFilePrefix + "dir"}, names)
}
