package cli

import (
	"github.com/spf13/cobra"

	"docver.dev/docver/internal/actions/delete"
	"docver.dev/docver/internal/cli/common"
	"docver.dev/docver/internal/runtime"
)

// newDeleteCmd creates the delete command
func newDeleteCmd(g *globalFlags, version string) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "delete [identifier...]",
		Short: "Delete deployed versions or aliases",
		Long: `Delete deployed versions or aliases.

Deleting a version removes its directory and every alias pointing at it.
Deleting an alias leaves its version in place. --all removes everything on the
deploy branch, or everything under the deploy prefix.`,
		SilenceUsage:      true,
		ValidArgsFunction: completeVersions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, version, func(ctx *runtime.Context) error {
				return delete.Action(ctx, delete.Options{
					Identifiers:        args,
					All:                all,
					Message:            g.message,
					Push:               g.push,
					IgnoreRemoteStatus: g.ignoreRemoteStatus,
				})
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Delete every version")

	return cmd
}
