package git

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrFileNotFound is returned by ReadFile when the path is absent from the commit tree
var ErrFileNotFound = errors.New("file not found in commit")

// shortHashLength matches git's default abbreviation
const shortHashLength = 7

// Repository wraps a go-git repository.
//
// go-git caches the pack index of an opened repository, so open a fresh
// Repository after running commands that write objects (fetch, fast-import).
type Repository struct {
	*git.Repository
	path string
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if worktree, err := repo.Worktree(); err == nil {
		root = worktree.Filesystem.Root()
	}

	return &Repository{
		Repository: repo,
		path:       root,
	}, nil
}

// Root returns the root directory of the repository
func (r *Repository) Root() string {
	return r.path
}

// BranchTip returns the commit refs/heads/<branch> points at.
// The boolean is false when the branch does not exist.
func (r *Repository) BranchTip(branch string) (plumbing.Hash, bool, error) {
	return r.resolve(plumbing.NewBranchReferenceName(branch))
}

// RemoteBranchTip returns the commit refs/remotes/<remote>/<branch> points at.
// The boolean is false when the remote-tracking branch does not exist.
func (r *Repository) RemoteBranchTip(remote, branch string) (plumbing.Hash, bool, error) {
	return r.resolve(plumbing.NewRemoteReferenceName(remote, branch))
}

func (r *Repository) resolve(name plumbing.ReferenceName) (plumbing.Hash, bool, error) {
	ref, err := r.Reference(name, true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return plumbing.ZeroHash, false, nil
	}
	if err != nil {
		return plumbing.ZeroHash, false, fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	return ref.Hash(), true, nil
}

// IsAncestor reports whether ancestor is reachable from descendant.
// A commit counts as its own ancestor.
func (r *Repository) IsAncestor(ancestor, descendant plumbing.Hash) (bool, error) {
	if ancestor == descendant {
		return true, nil
	}
	a, err := r.CommitObject(ancestor)
	if err != nil {
		return false, fmt.Errorf("failed to load commit %s: %w", ancestor, err)
	}
	d, err := r.CommitObject(descendant)
	if err != nil {
		return false, fmt.Errorf("failed to load commit %s: %w", descendant, err)
	}
	return a.IsAncestor(d)
}

// ReadFile returns the contents of path in the tree of commit.
// It returns ErrFileNotFound when the tree has no such file.
func (r *Repository) ReadFile(commit plumbing.Hash, path string) ([]byte, error) {
	c, err := r.CommitObject(commit)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", commit, err)
	}
	file, err := c.File(path)
	if errors.Is(err, object.ErrFileNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
		return nil, fmt.Errorf("%s at %s: %w", path, commit, ErrFileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s at %s: %w", path, commit, err)
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s at %s: %w", path, commit, err)
	}
	defer func() { _ = reader.Close() }()

	return io.ReadAll(reader)
}

// HeadShortHash returns the abbreviated hash HEAD points at
func (r *Repository) HeadShortHash() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String()[:shortHashLength], nil
}

// HasRemote reports whether a remote with the given name is configured
func (r *Repository) HasRemote(name string) bool {
	_, err := r.Remote(name)
	return err == nil
}
