package cli

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"docver.dev/docver/internal/actions"
	"docver.dev/docver/internal/config"
	"docver.dev/docver/internal/git"
	"docver.dev/docver/internal/output"
	"docver.dev/docver/internal/runtime"
)

// completeVersions is a cobra.ValidArgsFunction returning the deployed tags and aliases
func completeVersions(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	repoRoot, err := git.GetRepoRoot("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cfg, err := config.LoadRepoConfig(repoRoot, "")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cfg = config.MergeFlags(cfg, cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	ctx := runtime.NewContext(cmd.Context(), repoRoot, cfg, output.NewSplog())
	base, err := actions.CurrentBase(ctx, actions.ReadOptions{Offline: true})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := map[string]bool{}
	for v, aliases := range base.Registry.All() {
		names[v.Tag] = true
		for _, alias := range aliases {
			names[alias] = true
		}
	}
	return slices.Sorted(maps.Keys(names)), cobra.ShellCompDirectiveNoFileComp
}
