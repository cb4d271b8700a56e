// Package list shows the versions deployed on the deploy branch.
package list

import (
	"fmt"
	"strings"

	"docver.dev/docver/internal/actions"
	docvererrors "docver.dev/docver/internal/errors"
	"docver.dev/docver/internal/output"
	"docver.dev/docver/internal/runtime"
	"docver.dev/docver/internal/versions"
)

// Options contains options for listing versions
type Options struct {
	// Identifiers restricts the listing to these tags or aliases.
	Identifiers []string
	// JSON prints the versions document instead of the human listing.
	JSON bool
	// Offline skips fetching the deploy branch from the remote.
	Offline bool
}

// Action prints the deployed versions, newest first
func Action(ctx *runtime.Context, opts Options) error {
	splog := ctx.Splog

	base, err := actions.CurrentBase(ctx, actions.ReadOptions{Offline: opts.Offline})
	if err != nil {
		return err
	}

	registry, err := selectVersions(base.Registry, opts.Identifiers)
	if err != nil {
		return err
	}

	if opts.JSON {
		document, err := registry.Document()
		if err != nil {
			return err
		}
		splog.Page(string(document))
		return nil
	}

	if registry.Len() == 0 {
		splog.Info("No versions deployed to %s.", ctx.Config.Branch)
		return nil
	}
	for v, aliases := range registry.All() {
		splog.Page(FormatVersion(v, aliases) + "\n")
	}
	return nil
}

// FormatVersion renders one listing line: tag, title when it differs, and aliases
func FormatVersion(v *versions.Version, aliases []string) string {
	line := output.ColorTag(v.Tag)
	if title := v.DisplayTitle(); title != v.Tag {
		line += " " + output.ColorTitle(fmt.Sprintf("(%s)", title))
	}
	if len(aliases) > 0 {
		colored := make([]string, len(aliases))
		for i, alias := range aliases {
			colored[i] = output.ColorAlias(alias)
		}
		line += fmt.Sprintf(" [%s]", strings.Join(colored, ", "))
	}
	return line
}

// selectVersions narrows registry to the versions named by identifiers,
// keeping all of their aliases.
func selectVersions(registry *versions.Registry, identifiers []string) (*versions.Registry, error) {
	if len(identifiers) == 0 {
		return registry, nil
	}

	selected := versions.New()
	for _, identifier := range identifiers {
		found := registry.Search(identifier)
		if len(found) == 0 {
			return nil, docvererrors.NewVersionNotFoundError(identifier)
		}
		for _, v := range found {
			selected.Upsert(v.Tag, v.Title, registry.AliasesOf(v.Tag)...)
		}
	}
	return selected, nil
}
