package catalog

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

const (
	ThumbsDir    = "thumbs"
	OptimizedDir = "optimized"
)

var pageExtensions = map[string]bool{".jpg": true, ".png": true}

// ListIssues returns the sorted names of the issue directories under root.
// Hidden directories are skipped. A missing root is a fatal not-found error.
func ListIssues(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NotFoundError("issues directory not found").WithCause(err).
				WithContext("path", root).Build()
		}
		return nil, ferrors.FileSystemError("read issues directory").WithCause(err).
			WithContext("path", root).Build()
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !isDir(filepath.Join(root, e.Name()), e) {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// ListPages returns the sorted names of the page images in dir: regular files
// with a .jpg or .png extension in any letter case.
func ListPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ferrors.FileSystemError("read issue directory").WithCause(err).
			WithContext("path", dir).Build()
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if pageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// BaseName strips a trailing .png, .jpg or .jpeg (any case) from file.
func BaseName(file string) string {
	ext := filepath.Ext(file)
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg":
		return strings.TrimSuffix(file, ext)
	}
	return file
}

// NewPages builds the Page list for the given sorted file names. ext is the
// extension of the optimized rendition. Two files with the same base name
// would write the same optimized file and are rejected.
func NewPages(files []string, ext string) ([]Page, error) {
	pages := make([]Page, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, f := range files {
		base := BaseName(f)
		if prev, dup := seen[base]; dup {
			return nil, ferrors.ValidationError(fmt.Sprintf("pages %s and %s share the base name %q", prev, f, base)).
				WithContext("page", f).Build()
		}
		seen[base] = f
		pages = append(pages, Page{
			File:      f,
			Base:      base,
			Thumb:     path.Join(ThumbsDir, f),
			Optimized: path.Join(OptimizedDir, base+"."+ext),
		})
	}
	return pages, nil
}

// CoverPath returns the site-relative thumbnail of the issue's first page.
func CoverPath(id string, pages []Page) string {
	if len(pages) == 0 {
		return ""
	}
	return path.Join(id, pages[0].Thumb)
}

// isDir follows symlinks so a linked issue directory is still an issue.
func isDir(p string, e os.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
