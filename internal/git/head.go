package git

import (
	"errors"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Revision identifies the checked-out commit.
type Revision struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"` // empty on a detached HEAD
}

// ReadRevision returns the HEAD revision of the repository containing dir,
// searching parent directories for .git. A directory outside any repository,
// or a repository without commits, yields a zero Revision and no error.
func ReadRevision(dir string) (Revision, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Revision{}, nil
		}
		return Revision{}, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Revision{}, nil
		}
		return Revision{}, err
	}

	rev := Revision{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}
	return rev, nil
}
