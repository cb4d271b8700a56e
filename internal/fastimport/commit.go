package fastimport

import (
	"os"
	"slices"
	"strings"

	docvererrors "docver.dev/docver/internal/errors"
)

// Mode is a git file mode as used in fast-import filemodify commands.
type Mode uint32

const (
	// ModeFile is a regular, non-executable file
	ModeFile Mode = 0o100644
	// ModeExecutable is a regular, executable file
	ModeExecutable Mode = 0o100755
)

// File is a path in the new tree together with its contents.
type File struct {
	Path string
	Mode Mode
	Data []byte
}

// BytesFile returns a File holding data.
func BytesFile(path string, mode Mode, data []byte) File {
	return File{Path: path, Mode: mode, Data: data}
}

// ReadFile reads src from disk and returns it as a File stored at dest.
// Executable sources keep their executable bit.
func ReadFile(dest, src string) (File, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return File{}, docvererrors.NewFileReadError(src, err)
	}
	mode := ModeFile
	if info, err := os.Stat(src); err == nil && info.Mode().Perm()&0o111 != 0 {
		mode = ModeExecutable
	}
	return BytesFile(dest, mode, data), nil
}

// CommitOptions is the complete description of a commit.
type CommitOptions struct {
	// Ref is the ref fast-import updates, e.g. refs/heads/gh-pages.
	Ref string
	// Message is the commit message.
	Message string
	// Parent is the commit the new commit descends from. Empty creates a root commit.
	Parent string
	// DeleteAll clears the whole tree before Files are added. Deletes is ignored when set.
	DeleteAll bool
	// Deletes lists paths (files or directories) removed before Files are added.
	Deletes []string
	// Files are added to the tree. A later entry for the same path wins.
	Files []File
	// Identity controls the author and committer lines.
	Identity Identity
}

// Commit is an immutable, normalized commit description.
type Commit struct {
	ref       string
	message   string
	parent    string
	deleteAll bool
	deletes   []string
	files     []File
	identity  Identity
}

// NewCommit normalizes opts into a Commit. Deletions are deduplicated and
// files are keyed by path, and both are sorted so the rendered stream does not
// depend on the order they were supplied in.
func NewCommit(opts CommitOptions) Commit {
	c := Commit{
		ref:       opts.Ref,
		message:   opts.Message,
		parent:    opts.Parent,
		deleteAll: opts.DeleteAll,
		identity:  opts.Identity,
	}

	if !opts.DeleteAll {
		c.deletes = slices.Clone(opts.Deletes)
		slices.Sort(c.deletes)
		c.deletes = slices.Compact(c.deletes)
	}

	byPath := make(map[string]int, len(opts.Files))
	for _, f := range opts.Files {
		if i, ok := byPath[f.Path]; ok {
			c.files[i] = f
			continue
		}
		byPath[f.Path] = len(c.files)
		c.files = append(c.files, f)
	}
	slices.SortFunc(c.files, func(a, b File) int {
		return strings.Compare(a.Path, b.Path)
	})

	return c
}

// Ref returns the ref the commit updates.
func (c Commit) Ref() string { return c.ref }

// Message returns the commit message.
func (c Commit) Message() string { return c.message }

// Parent returns the parent commit, or "" for a root commit.
func (c Commit) Parent() string { return c.parent }

// DeleteAll reports whether the tree is cleared before files are added.
func (c Commit) DeleteAll() bool { return c.deleteAll }

// Deletes returns the sorted paths removed by the commit.
func (c Commit) Deletes() []string { return slices.Clone(c.deletes) }

// Files returns the files added by the commit, sorted by path.
func (c Commit) Files() []File { return slices.Clone(c.files) }

// Paths returns the paths of the files added by the commit.
func (c Commit) Paths() []string {
	paths := make([]string, len(c.files))
	for i, f := range c.files {
		paths[i] = f.Path
	}
	return paths
}
