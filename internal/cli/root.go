package cli

import (
	"github.com/spf13/cobra"
)

// globalFlags are accepted by every command
type globalFlags struct {
	message            string
	push               bool
	allowEmpty         bool
	ignoreRemoteStatus bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "docver",
		Short: "docver publishes versioned builds of a static site to a git branch",
		Long: `docver publishes versioned builds of a static site to a git branch.

Each deploy copies a built site into <version>/ on the deploy branch (gh-pages by
default), records it in versions.json, and writes _redirects rules for aliases
such as "latest". The branch is never checked out.`,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringP("remote", "r", "origin", "Remote to fetch from and push to")
	pf.StringP("branch", "b", "gh-pages", "Branch to commit to")
	pf.String("deploy-prefix", "", "Subdirectory of the branch to deploy into")
	pf.String("default-alias", "latest", "Alias the site root redirects to")
	pf.String("config", "", "Configuration file (default: docver.yml at the repository root)")
	pf.Bool("debug", false, "Print debug output")
	pf.StringVarP(&g.message, "message", "m", "", "Commit message")
	pf.BoolVarP(&g.push, "push", "p", false, "Push the branch after committing")
	pf.BoolVar(&g.allowEmpty, "allow-empty", false, "Allow deploying a site with no files")
	pf.BoolVar(&g.ignoreRemoteStatus, "ignore-remote-status", false, "Commit on top of the local branch even if it has diverged from the remote")

	rootCmd.AddCommand(newDeployCmd(g, version))
	rootCmd.AddCommand(newListCmd(version))
	rootCmd.AddCommand(newDeleteCmd(g, version))
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
