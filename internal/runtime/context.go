package runtime

import (
	"context"
	"fmt"

	"docver.dev/docver/internal/config"
	"docver.dev/docver/internal/fastimport"
	"docver.dev/docver/internal/git"
	"docver.dev/docver/internal/output"
)

// Context provides access to configuration and output for commands
type Context struct {
	context.Context
	Splog    *output.Splog
	RepoRoot string
	Runner   *git.CommandRunner
	Config   *config.RepoConfig
	// Identity seeds the author and committer of new commits; zero values
	// fall back to the environment and then to the docver defaults.
	Identity fastimport.Identity
	// Version is the docver build recorded in default commit messages.
	Version string
}

// NewContext creates a context for the repository at repoRoot
func NewContext(ctx context.Context, repoRoot string, cfg *config.RepoConfig, splog *output.Splog) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if splog == nil {
		splog = output.NewSplog()
	}
	return &Context{
		Context:  ctx,
		Splog:    splog,
		RepoRoot: repoRoot,
		Runner:   git.NewCommandRunner(repoRoot),
		Config:   cfg,
		Version:  "dev",
	}
}

// OpenRepository opens a fresh view of the repository. Call it again after
// commands that add objects, since an opened repository does not see new packs.
func (c *Context) OpenRepository() (*git.Repository, error) {
	repo, err := git.OpenRepository(c.RepoRoot)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	return repo, nil
}

// Importer returns the fast-import runner for the repository
func (c *Context) Importer() *fastimport.Importer {
	return fastimport.NewImporter(c.RepoRoot)
}
