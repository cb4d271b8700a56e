// Package deploy publishes a built site as a version on the deploy branch.
package deploy

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"docver.dev/docver/internal/actions"
	docvererrors "docver.dev/docver/internal/errors"
	"docver.dev/docver/internal/fastimport"
	"docver.dev/docver/internal/output"
	"docver.dev/docver/internal/runtime"
	"docver.dev/docver/internal/sitefiles"
)

// Options contains options for deploying a version
type Options struct {
	SourceDir string
	Version   string
	Title     string
	Aliases   []string
	// UpdateAliases moves aliases that already point at another version.
	UpdateAliases      bool
	Message            string
	Push               bool
	AllowEmpty         bool
	IgnoreRemoteStatus bool
}

// Action deploys the site in SourceDir as Version
func Action(ctx *runtime.Context, opts Options) error {
	cfg := ctx.Config
	splog := ctx.Splog

	if err := validate(opts); err != nil {
		return err
	}
	if slices.Contains(opts.Aliases, opts.Version) {
		splog.Warn("Ignoring alias %s: it names the version itself.", opts.Version)
		opts.Aliases = slices.DeleteFunc(slices.Clone(opts.Aliases), func(alias string) bool {
			return alias == opts.Version
		})
	}

	files, err := sitefiles.Collect(opts.SourceDir)
	if err != nil {
		return err
	}
	if len(files) == 0 && !opts.AllowEmpty {
		return fmt.Errorf("%s contains no files; pass --allow-empty to deploy it anyway", opts.SourceDir)
	}

	base, err := actions.PrepareBase(ctx, actions.BaseOptions{
		Fetch:              true,
		IgnoreRemoteStatus: opts.IgnoreRemoteStatus,
	})
	if err != nil {
		return err
	}
	registry := base.Registry

	for _, alias := range opts.Aliases {
		current, ok := registry.AliasTarget(alias)
		if !ok || current == opts.Version {
			continue
		}
		if !opts.UpdateAliases {
			return docvererrors.NewAliasConflictError(alias, current)
		}
		splog.Debug("Moving alias %s from %s to %s.", alias, current, opts.Version)
	}

	title := opts.Title
	if existing, ok := registry.ByTag(opts.Version); ok {
		splog.Debug("Replacing existing version %s.", opts.Version)
		if title == "" {
			title = existing.Title
		}
	}
	version := registry.Upsert(opts.Version, title, opts.Aliases...)

	commitFiles, err := actions.MetadataFiles(ctx, registry)
	if err != nil {
		return err
	}
	versionDir := cfg.Join(opts.Version)
	for _, f := range files {
		file, err := fastimport.ReadFile(path.Join(versionDir, f.Rel), f.Abs)
		if err != nil {
			return err
		}
		commitFiles = append(commitFiles, file)
	}

	message := opts.Message
	if message == "" {
		message = fmt.Sprintf("Deployed %s to %s%s with docver %s",
			actions.DescribeHead(ctx, base), opts.Version, actions.InPrefix(ctx), ctx.Version)
	}

	err = actions.Publish(ctx, base, actions.PublishOptions{
		Message: message,
		Deletes: append([]string{versionDir}, actions.MetadataPaths(ctx)...),
		Files:   commitFiles,
		Push:    opts.Push,
	})
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("Deployed %s to %s", output.ColorTag(version.Tag), output.ColorDim(cfg.Branch))
	if aliases := registry.AliasesOf(version.Tag); len(aliases) > 0 {
		colored := make([]string, len(aliases))
		for i, alias := range aliases {
			colored[i] = output.ColorAlias(alias)
		}
		summary += fmt.Sprintf(" [%s]", strings.Join(colored, ", "))
	}
	splog.Info("%s.", summary)
	if !opts.Push {
		splog.Tip("Run with --push to publish %s to %s.", cfg.Branch, cfg.Remote)
	}
	return nil
}

func validate(opts Options) error {
	if err := actions.ValidateName("version", opts.Version); err != nil {
		return err
	}
	for _, alias := range opts.Aliases {
		if err := actions.ValidateName("alias", alias); err != nil {
			return err
		}
	}
	return nil
}
