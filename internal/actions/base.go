package actions

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	docvererrors "docver.dev/docver/internal/errors"
	"docver.dev/docver/internal/git"
	"docver.dev/docver/internal/output"
	"docver.dev/docver/internal/runtime"
	"docver.dev/docver/internal/versions"
)

// Base is the state a new deploy commit builds on
type Base struct {
	// Parent is the commit the new commit descends from; zero for a root commit.
	Parent plumbing.Hash
	// Registry is the versions document found in Parent, or an empty registry.
	Registry *versions.Registry
	// Repo is the repository opened after fetching.
	Repo *git.Repository
}

// HasParent reports whether the deploy branch already has a commit to build on
func (b *Base) HasParent() bool {
	return !b.Parent.IsZero()
}

// ParentRef returns the parent as a fast-import "from" value, or "" for a root commit
func (b *Base) ParentRef() string {
	if !b.HasParent() {
		return ""
	}
	return b.Parent.String()
}

// BaseOptions controls how PrepareBase picks the parent
type BaseOptions struct {
	// Fetch updates the remote-tracking branch before resolving tips.
	Fetch bool
	// IgnoreRemoteStatus builds on the local branch even when it has diverged
	// from the remote.
	IgnoreRemoteStatus bool
}

// PrepareBase selects the parent of the next commit on the deploy branch and
// loads the registry stored there.
//
// The local branch is used when it contains the remote branch. When it is
// behind, the remote tip is used so the import fast-forwards the local branch.
// Diverged branches are an error unless IgnoreRemoteStatus is set.
func PrepareBase(ctx *runtime.Context, opts BaseOptions) (*Base, error) {
	cfg := ctx.Config
	splog := ctx.Splog

	if opts.Fetch {
		if err := fetch(ctx); err != nil {
			return nil, err
		}
	}

	// Reopen after fetching so new objects are visible
	repo, err := ctx.OpenRepository()
	if err != nil {
		return nil, err
	}

	parent, diverged, err := newestTip(repo, splog, cfg.Remote, cfg.Branch)
	if err != nil {
		return nil, err
	}
	if diverged {
		if !opts.IgnoreRemoteStatus {
			return nil, docvererrors.NewRemoteDivergedError(cfg.Branch, cfg.Remote)
		}
		splog.Warn("%s has diverged from %s/%s; building on the local branch.", cfg.Branch, cfg.Remote, cfg.Branch)
	}
	if parent.IsZero() {
		splog.Debug("%s does not exist yet; creating it.", cfg.Branch)
	}

	registry, err := loadRegistry(repo, parent, cfg.Join(versions.FileName))
	if err != nil {
		return nil, err
	}

	return &Base{Parent: parent, Registry: registry, Repo: repo}, nil
}

func fetch(ctx *runtime.Context) error {
	cfg := ctx.Config

	repo, err := ctx.OpenRepository()
	if err != nil {
		return err
	}
	if !repo.HasRemote(cfg.Remote) {
		ctx.Splog.Debug("Remote %s is not configured; skipping fetch.", cfg.Remote)
		return nil
	}

	found, err := ctx.Runner.Fetch(ctx, cfg.Remote, cfg.Branch)
	if err != nil {
		return err
	}
	if !found {
		ctx.Splog.Debug("%s has no branch %s yet.", cfg.Remote, cfg.Branch)
	}
	return nil
}

// newestTip returns the newer of the local deploy branch and its
// remote-tracking branch: the remote tip when the local branch is behind or
// missing, the local tip otherwise. When the two have diverged it returns the
// local tip and reports diverged. A zero hash means neither exists.
func newestTip(repo *git.Repository, splog *output.Splog, remote, branch string) (plumbing.Hash, bool, error) {
	local, hasLocal, err := repo.BranchTip(branch)
	if err != nil {
		return plumbing.ZeroHash, false, err
	}
	upstream, hasUpstream, err := repo.RemoteBranchTip(remote, branch)
	if err != nil {
		return plumbing.ZeroHash, false, err
	}

	switch {
	case !hasLocal && !hasUpstream:
		return plumbing.ZeroHash, false, nil
	case !hasLocal:
		splog.Debug("Using %s/%s; there is no local %s.", remote, branch, branch)
		return upstream, false, nil
	case !hasUpstream || local == upstream:
		return local, false, nil
	}

	behind, err := repo.IsAncestor(local, upstream)
	if err != nil {
		return plumbing.ZeroHash, false, err
	}
	if behind {
		splog.Debug("%s is behind %s/%s; using the remote tip.", branch, remote, branch)
		return upstream, false, nil
	}

	ahead, err := repo.IsAncestor(upstream, local)
	if err != nil {
		return plumbing.ZeroHash, false, err
	}
	return local, !ahead, nil
}

func loadRegistry(repo *git.Repository, commit plumbing.Hash, path string) (*versions.Registry, error) {
	if commit.IsZero() {
		return versions.New(), nil
	}

	data, err := repo.ReadFile(commit, path)
	if errors.Is(err, git.ErrFileNotFound) {
		return versions.New(), nil
	}
	if err != nil {
		return nil, err
	}

	registry, err := versions.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return registry, nil
}

// ReadOptions controls how CurrentBase finds the deployed versions
type ReadOptions struct {
	// Offline reads the refs already present without fetching.
	Offline bool
}

// CurrentBase loads the registry from the newest of the local deploy branch
// and its remote-tracking branch, fetching the remote first unless Offline is
// set. A diverged local branch is read as is, with a warning.
func CurrentBase(ctx *runtime.Context, opts ReadOptions) (*Base, error) {
	cfg := ctx.Config

	if !opts.Offline {
		if err := fetch(ctx); err != nil {
			return nil, err
		}
	}

	repo, err := ctx.OpenRepository()
	if err != nil {
		return nil, err
	}

	tip, diverged, err := newestTip(repo, ctx.Splog, cfg.Remote, cfg.Branch)
	if err != nil {
		return nil, err
	}
	if diverged {
		ctx.Splog.Warn("%s has diverged from %s/%s; reading the local branch.", cfg.Branch, cfg.Remote, cfg.Branch)
	}

	registry, err := loadRegistry(repo, tip, cfg.Join(versions.FileName))
	if err != nil {
		return nil, err
	}
	return &Base{Parent: tip, Registry: registry, Repo: repo}, nil
}
