package cli

import (
	"github.com/spf13/cobra"

	"docver.dev/docver/internal/actions/list"
	"docver.dev/docver/internal/cli/common"
	"docver.dev/docver/internal/runtime"
)

// newListCmd creates the list command
func newListCmd(version string) *cobra.Command {
	var (
		jsonOutput bool
		offline    bool
	)

	cmd := &cobra.Command{
		Use:     "list [identifier...]",
		Aliases: []string{"ls"},
		Short:   "List deployed versions, newest first",
		Long: `List deployed versions, newest first.

The deploy branch is fetched from the remote first, and the newer of the local
and remote branches is read. --offline reads the refs already present.`,
		SilenceUsage:      true,
		ValidArgsFunction: completeVersions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, version, func(ctx *runtime.Context) error {
				return list.Action(ctx, list.Options{
					Identifiers: args,
					JSON:        jsonOutput,
					Offline:     offline,
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Print the versions document as JSON")
	cmd.Flags().BoolVar(&offline, "offline", false, "Read the deploy branch without fetching it first")

	return cmd
}
