package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFile(t *testing.T) {
	t.Run("copies with a timestamped name", func(t *testing.T) {
		tempDir := t.TempDir()
		src := filepath.Join(tempDir, "claude_desktop_config.json")
		writeFile(t, src, `{"mcpServers":{}}`)

		backupDir := filepath.Join(tempDir, "backups")
		backupPath, err := File(backupDir, "claudeDesktop", src)
		require.NoError(t, err)
		require.NotEmpty(t, backupPath)

		assert.Regexp(t, `claudeDesktop-\d{8}-\d{6}\.json$`, backupPath)
		data, err := os.ReadFile(backupPath)
		require.NoError(t, err)
		assert.Equal(t, `{"mcpServers":{}}`, string(data))
	})

	t.Run("missing source is not an error", func(t *testing.T) {
		tempDir := t.TempDir()
		backupPath, err := File(filepath.Join(tempDir, "backups"), "env", filepath.Join(tempDir, "nope.json"))
		require.NoError(t, err)
		assert.Empty(t, backupPath)
	})

	t.Run("directory source is an error", func(t *testing.T) {
		tempDir := t.TempDir()
		_, err := File(filepath.Join(tempDir, "backups"), "env", tempDir)
		assert.Error(t, err)
	})
}

func TestLatestAndRestore(t *testing.T) {
	tempDir := t.TempDir()

	writeFile(t, filepath.Join(tempDir, "env-20240101-120000.json"), "old")
	writeFile(t, filepath.Join(tempDir, "env-20240301-120000.json"), "new")
	writeFile(t, filepath.Join(tempDir, "env-20240201-120000.json"), "mid")
	// A label that merely prefixes ours must not be picked up.
	writeFile(t, filepath.Join(tempDir, "env-prod-20250101-120000.json"), "other")
	writeFile(t, filepath.Join(tempDir, "unrelated.txt"), "junk")

	latest, err := Latest(tempDir, "env")
	require.NoError(t, err)
	assert.Equal(t, "env-20240301-120000.json", latest)

	dest := filepath.Join(tempDir, "restored", "out.json")
	used, err := Restore(tempDir, "env", dest)
	require.NoError(t, err)
	assert.Equal(t, "env-20240301-120000.json", used)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestRestoreNoBackups(t *testing.T) {
	tempDir := t.TempDir()
	_, err := Restore(tempDir, "env", filepath.Join(tempDir, "out.json"))
	assert.ErrorIs(t, err, ErrNoBackups)

	// Missing backup directory behaves the same as an empty one.
	_, err = Restore(filepath.Join(tempDir, "missing"), "env", filepath.Join(tempDir, "out.json"))
	assert.ErrorIs(t, err, ErrNoBackups)
}

func TestPrune(t *testing.T) {
	tempDir := t.TempDir()
	names := []string{
		"env-20240101-120000.json",
		"env-20240102-120000.json",
		"env-20240103-120000.json",
		"env-20240104-120000.json",
	}
	for _, name := range names {
		writeFile(t, filepath.Join(tempDir, name), "x")
	}
	writeFile(t, filepath.Join(tempDir, "other-20240101-120000.json"), "x")

	require.NoError(t, Prune(tempDir, "env", 2))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	var remaining []string
	for _, entry := range entries {
		remaining = append(remaining, entry.Name())
	}
	assert.ElementsMatch(t, []string{
		"env-20240103-120000.json",
		"env-20240104-120000.json",
		"other-20240101-120000.json",
	}, remaining)

	// keep <= 0 leaves everything alone.
	require.NoError(t, Prune(tempDir, "env", 0))
	entries, err = os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
