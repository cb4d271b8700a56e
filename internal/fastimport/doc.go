// Package fastimport builds a single commit as a git fast-import stream and
// applies it with `git fast-import`, so a branch can be updated without ever
// being checked out.
//
// A Commit is an immutable description: target ref, message, optional parent,
// the deletions to apply and the files to add. It is rendered into a buffer
// first and only then handed to git, which keeps the stream format testable
// without a git binary.
package fastimport
