package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyDir_MergesTree(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeText(t, filepath.Join(src, "a.txt"), "a")
	writeText(t, filepath.Join(src, "nested", "deep", "b.txt"), "b")
	writeText(t, filepath.Join(dst, "existing.txt"), "keep")

	require.NoError(t, CopyDir(src, dst))

	for name, want := range map[string]string{
		"a.txt":             "a",
		"nested/deep/b.txt": "b",
		"existing.txt":      "keep",
	} {
		got, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestCopyFile_KeepsMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "run.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755))

	dst := filepath.Join(dir, "copy.sh")
	require.NoError(t, CopyFile(src, dst))
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopyDir_MissingSource(t *testing.T) {
	require.Error(t, CopyDir(filepath.Join(t.TempDir(), "nope"), t.TempDir()))
}
