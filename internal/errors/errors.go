// Package errors provides sentinel errors and custom error types for the docver application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrSerialization indicates that the versions document could not be produced or consumed
	ErrSerialization = errors.New("versions document serialization failed")

	// ErrDuplicateTag indicates that a versions document lists the same tag twice
	ErrDuplicateTag = errors.New("duplicate version tag")

	// ErrFileRead indicates that a source file could not be read while assembling a commit
	ErrFileRead = errors.New("failed to read source file")

	// ErrSpawn indicates that an external git process could not be started
	ErrSpawn = errors.New("failed to start git")

	// ErrNonFastForward indicates that git refused to move a ref to a commit that does not descend from it
	ErrNonFastForward = errors.New("non-fast-forward")

	// ErrExecutionFailed indicates that git fast-import exited with a non-zero status
	ErrExecutionFailed = errors.New("git fast-import failed")

	// ErrRemoteDiverged indicates that the local and remote deploy branches have diverged
	ErrRemoteDiverged = errors.New("local and remote branches have diverged")

	// ErrAliasConflict indicates that an alias already points at a different version
	ErrAliasConflict = errors.New("alias already in use")

	// ErrVersionNotFound indicates that a requested version is not deployed
	ErrVersionNotFound = errors.New("version not found")
)

// SerializationError wraps a failure to encode or decode the versions document
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to %s versions document: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrSerialization
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// NewSerializationError creates a new SerializationError
func NewSerializationError(op string, err error) *SerializationError {
	return &SerializationError{Op: op, Err: err}
}

// DuplicateTagError represents a versions document listing the same tag more than once
type DuplicateTagError struct {
	Tag string
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("duplicate version tag %q", e.Tag)
}

// Is returns true if the target error is ErrDuplicateTag
func (e *DuplicateTagError) Is(target error) bool {
	return target == ErrDuplicateTag
}

// NewDuplicateTagError creates a new DuplicateTagError
func NewDuplicateTagError(tag string) *DuplicateTagError {
	return &DuplicateTagError{Tag: tag}
}

// FileReadError represents a source file that could not be read
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file for fast-import: %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrFileRead
func (e *FileReadError) Is(target error) bool {
	return target == ErrFileRead
}

// NewFileReadError creates a new FileReadError
func NewFileReadError(path string, err error) *FileReadError {
	return &FileReadError{Path: path, Err: err}
}

// SpawnError represents a git process that could not be launched
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrSpawn
func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawn
}

// NewSpawnError creates a new SpawnError
func NewSpawnError(command string, err error) *SpawnError {
	return &SpawnError{Command: command, Err: err}
}

// NonFastForwardError represents a ref update rejected because the new commit
// does not descend from the current tip
type NonFastForwardError struct {
	Ref    string
	Stderr string
}

func (e *NonFastForwardError) Error() string {
	return fmt.Sprintf("git fast-import refused to update %s (non-fast-forward)", e.Ref)
}

// Hint returns the remediation advice shown to the user
func (e *NonFastForwardError) Hint() string {
	return "The new commit must descend from the current branch tip. " +
		"Base the import on the tip (set a parent) or recreate/reset the branch."
}

// Is returns true if the target error is ErrNonFastForward
func (e *NonFastForwardError) Is(target error) bool {
	return target == ErrNonFastForward
}

// NewNonFastForwardError creates a new NonFastForwardError
func NewNonFastForwardError(ref, stderr string) *NonFastForwardError {
	return &NonFastForwardError{Ref: ref, Stderr: stderr}
}

// ExecutionFailedError represents any other non-zero exit of git fast-import
type ExecutionFailedError struct {
	Stderr string
	Err    error
}

func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("git fast-import failed: %s", e.Stderr)
}

func (e *ExecutionFailedError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrExecutionFailed
func (e *ExecutionFailedError) Is(target error) bool {
	return target == ErrExecutionFailed
}

// NewExecutionFailedError creates a new ExecutionFailedError
func NewExecutionFailedError(stderr string, err error) *ExecutionFailedError {
	return &ExecutionFailedError{Stderr: stderr, Err: err}
}

// RemoteDivergedError represents a deploy branch whose local and remote tips have diverged
type RemoteDivergedError struct {
	Branch string
	Remote string
}

func (e *RemoteDivergedError) Error() string {
	return fmt.Sprintf("%s has diverged from %s/%s", e.Branch, e.Remote, e.Branch)
}

// Is returns true if the target error is ErrRemoteDiverged
func (e *RemoteDivergedError) Is(target error) bool {
	return target == ErrRemoteDiverged
}

// NewRemoteDivergedError creates a new RemoteDivergedError
func NewRemoteDivergedError(branch, remote string) *RemoteDivergedError {
	return &RemoteDivergedError{Branch: branch, Remote: remote}
}

// AliasConflictError represents an alias that is already bound to another version
type AliasConflictError struct {
	Alias   string
	Current string
}

func (e *AliasConflictError) Error() string {
	return fmt.Sprintf("alias %s already points to version %s", e.Alias, e.Current)
}

// Is returns true if the target error is ErrAliasConflict
func (e *AliasConflictError) Is(target error) bool {
	return target == ErrAliasConflict
}

// NewAliasConflictError creates a new AliasConflictError
func NewAliasConflictError(alias, current string) *AliasConflictError {
	return &AliasConflictError{Alias: alias, Current: current}
}

// VersionNotFoundError represents a version identifier that matched nothing
type VersionNotFoundError struct {
	Identifier string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %s does not exist", e.Identifier)
}

// Is returns true if the target error is ErrVersionNotFound
func (e *VersionNotFoundError) Is(target error) bool {
	return target == ErrVersionNotFound
}

// NewVersionNotFoundError creates a new VersionNotFoundError
func NewVersionNotFoundError(identifier string) *VersionNotFoundError {
	return &VersionNotFoundError{Identifier: identifier}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
