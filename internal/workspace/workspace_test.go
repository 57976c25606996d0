package workspace

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_EphemeralMode(t *testing.T) {
	base := t.TempDir()
	mgr := NewManager(base)
	assert.Empty(t, mgr.GetPath())

	require.NoError(t, mgr.Create())
	path := mgr.GetPath()
	assert.Equal(t, base, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "issuebuilder-preview-"))
	assert.DirExists(t, path)

	require.NoError(t, mgr.Cleanup())
	assert.NoDirExists(t, path)
	assert.Empty(t, mgr.GetPath())
	require.NoError(t, mgr.Cleanup())
}

func TestManager_TwoEphemeralWorkspacesDiffer(t *testing.T) {
	base := t.TempDir()
	a, b := NewManager(base), NewManager(base)
	require.NoError(t, a.Create())
	require.NoError(t, b.Create())
	assert.NotEqual(t, a.GetPath(), b.GetPath())
}

func TestManager_PersistentMode(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	mgr := NewPersistentManager(dir)

	require.NoError(t, mgr.Create())
	assert.Equal(t, dir, mgr.GetPath())
	assert.DirExists(t, dir)

	require.NoError(t, mgr.Cleanup())
	assert.DirExists(t, dir)
}
