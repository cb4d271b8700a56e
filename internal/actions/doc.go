// Package actions provides high-level business logic for CLI commands.
//
// Each command (deploy, list, delete) lives in its own subpackage and builds
// on the helpers here:
//   - PrepareBase fetches the deploy branch, picks the parent commit and
//     loads the registry persisted in it
//   - Publish writes the registry metadata, imports the commit and pushes
//
// Actions accept runtime.Context which provides Config, Splog, and the git runner.
package actions
