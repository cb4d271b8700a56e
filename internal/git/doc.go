// Package git provides low-level Git operations.
//
// It wraps git command execution and go-git for:
//   - Repo state queries (branch tips, ancestry, HEAD)
//   - Reading files from a commit without a checkout
//   - Remote operations (fetch, push)
//
// Commits themselves are written by the fastimport package.
package git
