package fastimport_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	docvererrors "docver.dev/docver/internal/errors"
	"docver.dev/docver/internal/fastimport"
	"docver.dev/docver/testhelpers"
)

const pagesRef = "refs/heads/gh-pages"

// fakeGit writes a script standing in for git that prints stderr and exits 1.
func fakeGit(t *testing.T, stderr string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "git")
	script := "#!/bin/sh\ncat >/dev/null\nprintf '%s\\n' '" + stderr + "' >&2\nexit 1\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a root commit on a new branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		c := fastimport.NewCommit(fastimport.CommitOptions{
			Ref:      pagesRef,
			Message:  "first deploy",
			Identity: fixedIdentity(),
			Files: []fastimport.File{
				fastimport.BytesFile("1.0.0/index.html", fastimport.ModeFile, []byte("v1")),
				fastimport.BytesFile("versions.json", fastimport.ModeFile, []byte("[]\n")),
			},
		})
		require.NoError(t, fastimport.NewImporter(scene.Dir).Import(ctx, c))

		testhelpers.ExpectTree(t, scene.Repo, "gh-pages", []string{"1.0.0/index.html", "versions.json"})
		testhelpers.ExpectFileOnBranch(t, scene.Repo, "gh-pages", "1.0.0/index.html", "v1")

		msg, err := scene.Repo.CommitMessage("gh-pages")
		require.NoError(t, err)
		require.Equal(t, "first deploy", msg)

		author, err := scene.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%an <%ae> %at", "gh-pages")
		require.NoError(t, err)
		require.Equal(t, "docver[bot] <docver[bot]@users.noreply.github.io> 1700000000", author)

		// the working tree and current branch are untouched
		branch, err := scene.Repo.RunGitCommandAndGetOutput("symbolic-ref", "--short", "HEAD")
		require.NoError(t, err)
		require.Equal(t, "main", branch)
		_, err = os.Stat(filepath.Join(scene.Dir, "versions.json"))
		require.True(t, os.IsNotExist(err))
	})

	t.Run("applies deletions on top of the parent", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		importer := fastimport.NewImporter(scene.Dir)

		require.NoError(t, importer.Import(ctx, fastimport.NewCommit(fastimport.CommitOptions{
			Ref:      pagesRef,
			Message:  "one",
			Identity: fixedIdentity(),
			Files: []fastimport.File{
				fastimport.BytesFile("1.0.0/index.html", fastimport.ModeFile, []byte("v1")),
				fastimport.BytesFile("1.0.0/old.html", fastimport.ModeFile, []byte("old")),
				fastimport.BytesFile("2.0.0/index.html", fastimport.ModeFile, []byte("v2")),
			},
		})))
		parent, err := scene.Repo.GetRevision("gh-pages")
		require.NoError(t, err)

		require.NoError(t, importer.Import(ctx, fastimport.NewCommit(fastimport.CommitOptions{
			Ref:      pagesRef,
			Message:  "two",
			Parent:   parent,
			Deletes:  []string{"1.0.0"},
			Identity: fixedIdentity(),
			Files: []fastimport.File{
				fastimport.BytesFile("1.0.0/index.html", fastimport.ModeFile, []byte("v1 again")),
			},
		})))

		testhelpers.ExpectTree(t, scene.Repo, "gh-pages", []string{"1.0.0/index.html", "2.0.0/index.html"})
		testhelpers.ExpectFileOnBranch(t, scene.Repo, "gh-pages", "1.0.0/index.html", "v1 again")

		count, err := scene.Repo.GetCommitCount("gh-pages")
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})

	t.Run("deleteall starts from an empty tree", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		importer := fastimport.NewImporter(scene.Dir)

		require.NoError(t, importer.Import(ctx, fastimport.NewCommit(fastimport.CommitOptions{
			Ref:      pagesRef,
			Identity: fixedIdentity(),
			Files:    []fastimport.File{fastimport.BytesFile("a", fastimport.ModeFile, []byte("a"))},
		})))
		parent, err := scene.Repo.GetRevision("gh-pages")
		require.NoError(t, err)

		require.NoError(t, importer.Import(ctx, fastimport.NewCommit(fastimport.CommitOptions{
			Ref:       pagesRef,
			Parent:    parent,
			DeleteAll: true,
			Identity:  fixedIdentity(),
			Files:     []fastimport.File{fastimport.BytesFile("b", fastimport.ModeFile, []byte("b"))},
		})))

		testhelpers.ExpectTree(t, scene.Repo, "gh-pages", []string{"b"})
	})

	t.Run("reports a non-fast-forward update", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		importer := fastimport.NewImporter(scene.Dir)

		root := func(content string) fastimport.Commit {
			return fastimport.NewCommit(fastimport.CommitOptions{
				Ref:      pagesRef,
				Message:  content,
				Identity: fixedIdentity(),
				Files:    []fastimport.File{fastimport.BytesFile("index.html", fastimport.ModeFile, []byte(content))},
			})
		}
		require.NoError(t, importer.Import(ctx, root("one")))
		before, err := scene.Repo.GetRevision("gh-pages")
		require.NoError(t, err)

		err = importer.Import(ctx, root("two"))
		require.Error(t, err)
		require.True(t, errors.Is(err, docvererrors.ErrNonFastForward), err.Error())

		var nff *docvererrors.NonFastForwardError
		require.True(t, errors.As(err, &nff))
		require.Equal(t, pagesRef, nff.Ref)
		require.NotEmpty(t, nff.Hint())

		after, err := scene.Repo.GetRevision("gh-pages")
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("classifies non-fast-forward diagnostics", func(t *testing.T) {
		importer := &fastimport.Importer{
			RepoDir: t.TempDir(),
			Git:     fakeGit(t, "error: Not updating refs/heads/gh-pages (non-fast-forward)"),
		}
		err := importer.Import(ctx, fastimport.NewCommit(fastimport.CommitOptions{Ref: pagesRef, Identity: fixedIdentity()}))
		require.True(t, errors.Is(err, docvererrors.ErrNonFastForward))
		require.False(t, errors.Is(err, docvererrors.ErrExecutionFailed))
	})

	t.Run("other failures carry the diagnostics", func(t *testing.T) {
		importer := &fastimport.Importer{
			RepoDir: t.TempDir(),
			Git:     fakeGit(t, "fatal: Unsupported command: bogus"),
		}
		err := importer.Import(ctx, fastimport.NewCommit(fastimport.CommitOptions{Ref: pagesRef, Identity: fixedIdentity()}))
		require.True(t, errors.Is(err, docvererrors.ErrExecutionFailed))

		var execErr *docvererrors.ExecutionFailedError
		require.True(t, errors.As(err, &execErr))
		require.Equal(t, "fatal: Unsupported command: bogus", execErr.Stderr)
	})

	t.Run("reports a missing git binary as a spawn error", func(t *testing.T) {
		importer := &fastimport.Importer{
			RepoDir: t.TempDir(),
			Git:     filepath.Join(t.TempDir(), "no-such-git"),
		}
		err := importer.Import(ctx, fastimport.NewCommit(fastimport.CommitOptions{Ref: pagesRef, Identity: fixedIdentity()}))
		require.True(t, errors.Is(err, docvererrors.ErrSpawn))
	})
}
