package fastimport

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	docvererrors "docver.dev/docver/internal/errors"
)

// Importer applies commits to a repository with git fast-import.
type Importer struct {
	// RepoDir is the repository the commit is imported into.
	RepoDir string
	// Git is the git binary. Defaults to "git".
	Git string
}

// NewImporter returns an Importer for the repository at repoDir.
func NewImporter(repoDir string) *Importer {
	return &Importer{RepoDir: repoDir}
}

func (i *Importer) gitBinary() string {
	if i.Git == "" {
		return "git"
	}
	return i.Git
}

// Import renders c and pipes it to git fast-import. On success the commit's
// ref points at the new commit and nothing else in the repository changed.
//
// A rejected ref update caused by a commit that does not descend from the
// current tip is reported as a *errors.NonFastForwardError.
func (i *Importer) Import(ctx context.Context, c Commit) error {
	stream, err := c.Render()
	if err != nil {
		return err
	}

	args := []string{"-C", i.RepoDir, "fast-import", "--quiet"}
	cmd := exec.CommandContext(ctx, i.gitBinary(), args...)
	cmd.Stdin = bytes.NewReader(stream)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return docvererrors.NewSpawnError(i.gitBinary()+" fast-import", err)
	}

	if err := cmd.Wait(); err != nil {
		return classifyFailure(c.ref, strings.TrimSpace(stderr.String()), err)
	}
	return nil
}

func classifyFailure(ref, stderr string, err error) error {
	if isNonFastForward(stderr) {
		return docvererrors.NewNonFastForwardError(ref, stderr)
	}
	return docvererrors.NewExecutionFailedError(stderr, err)
}

// isNonFastForward matches fast-import's complaint when the branch tip is not
// an ancestor of the imported commit, e.g.
//
//	warning: Not updating refs/heads/gh-pages (new tip 1234 does not contain 5678)
func isNonFastForward(stderr string) bool {
	return strings.Contains(stderr, "Not updating") &&
		(strings.Contains(stderr, "does not contain") || strings.Contains(stderr, "non-fast-forward"))
}
