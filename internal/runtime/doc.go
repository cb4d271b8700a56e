// Package runtime provides the execution context for docver commands.
//
// It encapsulates shared dependencies and configuration needed by actions,
// such as the logger, the git runner, and the repository root path.
package runtime
