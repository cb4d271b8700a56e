package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	docvererrors "docver.dev/docver/internal/errors"
)

// ErrStaleRemoteInfo indicates that a push failed because the remote has changed
var ErrStaleRemoteInfo = errors.New("stale info")

// ErrPushRejected indicates that the remote refused a push that is not a fast-forward
var ErrPushRejected = errors.New("push rejected")

// Fetch fetches branch from remote, updating the remote-tracking ref.
// It reports false without an error when the remote has no such branch yet.
func (r *CommandRunner) Fetch(ctx context.Context, remote, branch string) (bool, error) {
	_, err := r.Run(ctx, "fetch", remote, branch)
	if err == nil {
		return true, nil
	}
	if isMissingRemoteBranch(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to fetch %s from %s: %w", branch, remote, err)
}

// Push pushes branch to remote.
func (r *CommandRunner) Push(ctx context.Context, remote, branch string) error {
	_, err := r.Run(ctx, "push", remote, fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	if err == nil {
		return nil
	}

	output := gitOutput(err)
	switch {
	case strings.Contains(output, "stale info"):
		return fmt.Errorf("push of %s failed due to external changes to the remote branch: %w", branch, ErrStaleRemoteInfo)
	case strings.Contains(output, "[rejected]") || strings.Contains(output, "non-fast-forward"):
		return fmt.Errorf("push of %s to %s was rejected; the remote has commits you do not have locally, run 'git fetch %s %s' and deploy again: %w",
			branch, remote, remote, branch, ErrPushRejected)
	}
	return fmt.Errorf("failed to push %s to %s: %w", branch, remote, err)
}

func gitOutput(err error) string {
	var gitErr *docvererrors.GitCommandError
	if !errors.As(err, &gitErr) {
		return ""
	}
	return gitErr.Stderr + gitErr.Stdout
}

func isMissingRemoteBranch(err error) bool {
	out := gitOutput(err)
	return strings.Contains(out, "couldn't find remote ref") ||
		strings.Contains(out, "invalid refspec") ||
		strings.Contains(out, "unknown revision")
}
