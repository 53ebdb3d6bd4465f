package content

import (
	"io"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// trackedFiles lists the files committed at HEAD below root. Uncommitted and
// untracked files in the working directory are not visible.
func trackedFiles(root string) ([]file, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve content directory").
			WithContext("content_dir", root).
			Build()
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "content directory is not inside a git repository").
			WithContext("content_dir", root).
			Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "repository has no worktree").Build()
	}
	head, err := repo.Head()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to resolve HEAD").Build()
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to load HEAD commit").Build()
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to load HEAD tree").Build()
	}

	top, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		top = wt.Filesystem.Root()
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	sub, err := filepath.Rel(top, abs)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "content directory is outside the worktree").Build()
	}
	if sub = filepath.ToSlash(sub); sub != "." {
		tree, err = tree.Tree(sub)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryGit, "content directory is not tracked at HEAD").
				WithContext("content_dir", root).
				Build()
		}
	}

	var files []file
	err = tree.Files().ForEach(func(f *object.File) error {
		files = append(files, file{rel: f.Name, read: blobReader(f)})
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to list HEAD tree").Build()
	}
	return files, nil
}

func blobReader(f *object.File) func() ([]byte, error) {
	return func() ([]byte, error) {
		r, err := f.Reader()
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return io.ReadAll(r)
	}
}
