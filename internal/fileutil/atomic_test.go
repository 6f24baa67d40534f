package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report", "out.txt")
	err := WriteAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteAtomicFailureLeavesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	boom := errors.New("boom")

	err := WriteAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBatchCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var b Batch
	for _, name := range []string{"a.txt", "b.txt"} {
		name := name
		require.NoError(t, b.Add(filepath.Join(dir, name), func(w io.Writer) error {
			_, err := io.WriteString(w, name)
			return err
		}))
	}

	// nothing visible before Commit
	_, err := os.Stat(filepath.Join(dir, "a.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, b.Commit())
	for _, name := range []string{"a.txt", "b.txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, name, string(data))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBatchFailureKeepsPreviousFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	require.NoError(t, os.WriteFile(first, []byte("old"), 0o644))

	var b Batch
	require.NoError(t, b.Add(first, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	}))
	boom := errors.New("boom")
	err := b.Add(filepath.Join(dir, "second.txt"), func(w io.Writer) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	b.Abort()

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBatchCommitFailureRemovesTemps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0o755))

	var b Batch
	for _, path := range []string{filepath.Join(dir, "a.txt"), blocked, filepath.Join(dir, "c.txt")} {
		require.NoError(t, b.Add(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "x")
			return err
		}))
	}
	assert.Error(t, b.Commit())

	var names []string
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"a.txt", "blocked"}, names)
}
