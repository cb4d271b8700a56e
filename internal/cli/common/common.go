// Package common provides shared helper functions for CLI commands.
package common

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docver.dev/docver/internal/config"
	"docver.dev/docver/internal/git"
	"docver.dev/docver/internal/output"
	"docver.dev/docver/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function.
// Configuration comes from docver.yml overridden by explicitly set flags.
func Run(cmd *cobra.Command, version string, fn func(ctx *runtime.Context) error) error {
	flags := cmd.Flags()

	repoRoot, err := git.GetRepoRoot("")
	if err != nil {
		return err
	}

	configPath, _ := flags.GetString("config")
	cfg, err := config.LoadRepoConfig(repoRoot, configPath)
	if err != nil {
		return err
	}
	cfg = config.MergeFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	debug, _ := flags.GetBool("debug")
	output.ConfigureColors()
	splog, err := output.NewSplogWithOptions(output.Options{
		Debug:   debug || os.Getenv("DEBUG") != "",
		LogFile: output.GetLogFilePath(),
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = splog.Close() }()

	ctx := runtime.NewContext(cmd.Context(), repoRoot, cfg, splog)
	ctx.Version = version
	splog.Debug("Using %s on %s (prefix %q).", cfg.Branch, cfg.Remote, cfg.DeployPrefix)
	return fn(ctx)
}
