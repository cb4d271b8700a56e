package cli

import (
	"github.com/spf13/cobra"

	"docver.dev/docver/internal/actions/deploy"
	"docver.dev/docver/internal/cli/common"
	"docver.dev/docver/internal/runtime"
)

// newDeployCmd creates the deploy command
func newDeployCmd(g *globalFlags, version string) *cobra.Command {
	var (
		title         string
		updateAliases bool
	)

	cmd := &cobra.Command{
		Use:   "deploy <source-dir> <version> [alias...]",
		Short: "Deploy a built site as a version",
		Long: `Deploy a built site as a version.

Every file under <source-dir> is committed to <version>/ on the deploy branch,
replacing anything deployed there before. Each alias is pointed at <version>;
moving an alias that already points elsewhere requires --update-aliases.`,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, version, func(ctx *runtime.Context) error {
				return deploy.Action(ctx, deploy.Options{
					SourceDir:          args[0],
					Version:            args[1],
					Aliases:            args[2:],
					Title:              title,
					UpdateAliases:      updateAliases,
					Message:            g.message,
					Push:               g.push,
					AllowEmpty:         g.allowEmpty,
					IgnoreRemoteStatus: g.ignoreRemoteStatus,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title shown for the version (defaults to the version)")
	cmd.Flags().BoolVarP(&updateAliases, "update-aliases", "u", false, "Move aliases that point at other versions")

	return cmd
}
