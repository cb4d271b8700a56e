// Package testhelpers provides testing utilities for docver,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectFileOnBranch asserts that path exists at rev with the given content.
func ExpectFileOnBranch(t *testing.T, repo *GitRepo, rev, path, expected string) {
	t.Helper()

	content, err := repo.ShowFile(rev, path)
	require.NoError(t, err, "Expected %s to exist at %s", path, rev)
	require.Equal(t, expected, content, "Unexpected content for %s at %s", path, rev)
}

// ExpectNoFileOnBranch asserts that path does not exist at rev.
func ExpectNoFileOnBranch(t *testing.T, repo *GitRepo, rev, path string) {
	t.Helper()

	_, err := repo.ShowFile(rev, path)
	require.Error(t, err, "Expected %s to be absent at %s", path, rev)
}

// ExpectTree asserts the exact set of files at rev.
func ExpectTree(t *testing.T, repo *GitRepo, rev string, expected []string) {
	t.Helper()

	files, err := repo.ListTree(rev)
	require.NoError(t, err, "Failed to list tree of %s", rev)
	require.ElementsMatch(t, expected, files, "Tree of %s does not match", rev)
}
