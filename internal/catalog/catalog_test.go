package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestListIssues_SortedDirectoriesOnly(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"010", "002", "001", ".git"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
	touch(t, filepath.Join(root, "README.md"))

	ids, err := ListIssues(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "002", "010"}, ids)
}

func TestListIssues_MissingRoot(t *testing.T) {
	_, err := ListIssues(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestListPages_FiltersExtensionsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"10.png", "02.JPG", "01.jpg", "03.Png", "notes.txt", "title.txt", "04.jpeg", "05.gif", ".hidden.png"} {
		touch(t, filepath.Join(dir, f))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.png"), 0o755))

	files, err := ListPages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"01.jpg", "02.JPG", "03.Png", "10.png"}, files)
}

func TestListPages_EmptyIsValid(t *testing.T) {
	files, err := ListPages(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"01.png":       "01",
		"cover.JPG":    "cover",
		"spread.jpeg":  "spread",
		"a.b.png":      "a.b",
		"archive.webp": "archive.webp",
	}
	for in, want := range cases {
		assert.Equal(t, want, BaseName(in), in)
	}
}

func TestNewPages(t *testing.T) {
	pages, err := NewPages([]string{"01.png", "02.JPG"}, "webp")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, Page{File: "01.png", Base: "01", Thumb: "thumbs/01.png", Optimized: "optimized/01.webp"}, pages[0])
	assert.Equal(t, "optimized/02.webp", pages[1].Optimized)
	assert.Equal(t, "thumbs/02.JPG", pages[1].Thumb)
}

func TestNewPages_RejectsBaseNameCollision(t *testing.T) {
	_, err := NewPages([]string{"01.jpg", "01.png"}, "webp")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "002", "b.png"))
	touch(t, filepath.Join(root, "002", "a.png"))
	touch(t, filepath.Join(root, "001", "title.txt"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "001", "title.txt"), []byte("Arc One\nCycle Two\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "003"), 0o755))

	issues, err := Scan(root, "webp")
	require.NoError(t, err)
	require.Len(t, issues, 3)

	assert.Equal(t, "001", issues[0].ID)
	assert.Equal(t, "Arc One — Cycle Two", issues[0].Title.Display)
	assert.Empty(t, issues[0].Pages)
	assert.Empty(t, issues[0].Cover)

	assert.Equal(t, "002", issues[1].ID)
	assert.Equal(t, "002/thumbs/a.png", issues[1].Cover)
	assert.Equal(t, []string{"a.png", "b.png"}, []string{issues[1].Pages[0].File, issues[1].Pages[1].File})
	assert.Equal(t, "002", issues[1].Title.Display)

	assert.Equal(t, "003", issues[2].Title.Display)
}
