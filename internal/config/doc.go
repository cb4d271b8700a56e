// Package config provides repository configuration for docver,
// read from docver.yml at the repository root and overridden by command-line flags.
package config
