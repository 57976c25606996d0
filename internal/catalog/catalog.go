package catalog

import "path/filepath"

// LoadIssue reads one issue directory: its pages, title and cover. ext is the
// extension of the optimized rendition.
func LoadIssue(root, id, ext string) (Issue, error) {
	dir := filepath.Join(root, id)
	files, err := ListPages(dir)
	if err != nil {
		return Issue{}, err
	}
	pages, err := NewPages(files, ext)
	if err != nil {
		return Issue{}, err
	}
	title, err := ReadTitle(dir, id)
	if err != nil {
		return Issue{}, err
	}
	return Issue{
		ID:    id,
		Dir:   dir,
		Pages: pages,
		Title: title,
		Cover: CoverPath(id, pages),
	}, nil
}

// Scan loads every issue under root in sorted order.
func Scan(root, ext string) ([]Issue, error) {
	ids, err := ListIssues(root)
	if err != nil {
		return nil, err
	}
	issues := make([]Issue, 0, len(ids))
	for _, id := range ids {
		is, err := LoadIssue(root, id, ext)
		if err != nil {
			return nil, err
		}
		issues = append(issues, is)
	}
	return issues, nil
}
