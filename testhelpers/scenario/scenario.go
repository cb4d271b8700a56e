// Package scenario provides a high-level test scenario that combines a Scene
// and a runtime Context to provide a terse API for integration tests.
package scenario

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"docver.dev/docver/internal/config"
	"docver.dev/docver/internal/fastimport"
	"docver.dev/docver/internal/output"
	"docver.dev/docver/internal/runtime"
	"docver.dev/docver/internal/versions"
	"docver.dev/docver/testhelpers"
)

// FixedTime is the commit time of every commit made through a Scenario
var FixedTime = time.Unix(1700000000, 0)

// Scenario represents a high-level test scenario that combines a Scene
// and a runtime Context to provide a terse API for integration tests.
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	Context *runtime.Context
	Output  *bytes.Buffer
	// Remote is the bare repository behind "origin", once WithRemote ran.
	Remote string

	sites int
}

// NewScenario creates a new Scenario with an optional setup function.
// Console output is captured in Output and the commit identity ignores the
// environment so results do not depend on the machine running the tests.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	scene := testhelpers.NewScene(t, setup)
	output.DisableColors()

	var buf bytes.Buffer
	splog, err := output.NewSplogWithOptions(output.Options{Writer: &buf, Debug: true})
	require.NoError(t, err)

	ctx := runtime.NewContext(context.Background(), scene.Dir, config.Default(), splog)
	ctx.Version = "test"
	ctx.Identity = fastimport.Identity{
		LookupEnv: func(string) (string, bool) { return "", false },
		Now:       func() time.Time { return FixedTime },
	}

	return &Scenario{
		T:       t,
		Scene:   scene,
		Context: ctx,
		Output:  &buf,
	}
}

// WithInitialCommit creates an initial commit on the main branch.
func (s *Scenario) WithInitialCommit() *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.CreateChangeAndCommit("initial", "init")
	require.NoError(s.T, err)
	return s
}

// WithRemote creates a bare "origin" remote and pushes main to it.
func (s *Scenario) WithRemote() *Scenario {
	s.T.Helper()
	remote, err := s.Scene.Repo.CreateBareRemote("origin")
	require.NoError(s.T, err)
	s.Remote = remote
	if s.Scene.Repo.HasRef("main") {
		require.NoError(s.T, s.Scene.Repo.PushBranch("origin", "main"))
	}
	return s
}

// WithoutDebugOutput keeps debug messages out of Output, leaving only what a
// user sees by default.
func (s *Scenario) WithoutDebugOutput() *Scenario {
	s.T.Helper()
	splog, err := output.NewSplogWithOptions(output.Options{Writer: s.Output})
	require.NoError(s.T, err)
	s.Context.Splog = splog
	return s
}

// WithConfig adjusts the repository configuration used by actions.
func (s *Scenario) WithConfig(fn func(cfg *config.RepoConfig)) *Scenario {
	s.T.Helper()
	fn(s.Context.Config)
	require.NoError(s.T, s.Context.Config.Validate())
	return s
}

// RunGit runs a git command in the scenario's repository.
func (s *Scenario) RunGit(args ...string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.RunGitCommand(args...)
	require.NoError(s.T, err)
	return s
}

// Site writes a built site to a fresh directory and returns its path.
func (s *Scenario) Site(files map[string]string) string {
	s.T.Helper()
	s.sites++
	dir, err := s.Scene.WriteSite(filepath.Join("sites", "site"+strconv.Itoa(s.sites)), files)
	require.NoError(s.T, err)
	return dir
}

// Clone clones the remote into a second working copy.
func (s *Scenario) Clone(name string) *testhelpers.GitRepo {
	s.T.Helper()
	require.NotEmpty(s.T, s.Remote, "WithRemote must run before Clone")
	repo, err := testhelpers.NewGitClone(filepath.Join(filepath.Dir(s.Scene.Dir), name), s.Remote)
	require.NoError(s.T, err)
	return repo
}

// ContextFor returns a runtime context for another working copy, sharing the
// scenario's configuration, identity and version. Its output is discarded.
func (s *Scenario) ContextFor(repo *testhelpers.GitRepo) *runtime.Context {
	s.T.Helper()
	splog, err := output.NewSplogWithOptions(output.Options{Writer: io.Discard})
	require.NoError(s.T, err)

	cfg := *s.Context.Config
	ctx := runtime.NewContext(context.Background(), repo.Dir, &cfg, splog)
	ctx.Version = s.Context.Version
	ctx.Identity = s.Context.Identity
	return ctx
}

// Registry parses the versions document stored at rev.
func (s *Scenario) Registry(rev string) *versions.Registry {
	s.T.Helper()
	data, err := s.Scene.Repo.ShowFile(rev, s.Context.Config.Join(versions.FileName))
	require.NoError(s.T, err)
	registry, err := versions.Parse([]byte(data))
	require.NoError(s.T, err)
	return registry
}

// ExpectFile asserts the content of path at rev.
func (s *Scenario) ExpectFile(rev, path, expected string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectFileOnBranch(s.T, s.Scene.Repo, rev, path, expected)
	return s
}

// ExpectNoFile asserts that path is absent at rev.
func (s *Scenario) ExpectNoFile(rev, path string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectNoFileOnBranch(s.T, s.Scene.Repo, rev, path)
	return s
}

// ExpectTree asserts the exact files at rev.
func (s *Scenario) ExpectTree(rev string, expected ...string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectTree(s.T, s.Scene.Repo, rev, expected)
	return s
}

// ExpectCommitCount asserts how many commits are reachable from rev.
func (s *Scenario) ExpectCommitCount(rev string, expected int) *Scenario {
	s.T.Helper()
	count, err := s.Scene.Repo.GetCommitCount(rev)
	require.NoError(s.T, err)
	require.Equal(s.T, expected, count, "commit count of %s", rev)
	return s
}
