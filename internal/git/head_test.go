package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T, dir string) *git.Repository {
	t.Helper()
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	require.NoError(t, err)
	return repo
}

func TestReadRevision_OutsideRepository(t *testing.T) {
	rev, err := ReadRevision(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Revision{}, rev)
}

func TestReadRevision_NoCommits(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)

	rev, err := ReadRevision(dir)
	require.NoError(t, err)
	assert.Empty(t, rev.Commit)
}

func TestReadRevision_FromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	repo := initRepo(t, dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "issues", "001"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "issues", "001", "title.txt"), []byte("Dawn\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("issues/001/title.txt")
	require.NoError(t, err)
	hash, err := wt.Commit("first issue", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	rev, err := ReadRevision(filepath.Join(dir, "issues", "001"))
	require.NoError(t, err)
	assert.Equal(t, hash.String(), rev.Commit)
	assert.Equal(t, "main", rev.Branch)
}
