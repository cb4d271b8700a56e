// Package delete removes deployed versions and aliases from the deploy branch.
package delete

import (
	"fmt"
	"strings"

	"docver.dev/docver/internal/actions"
	docvererrors "docver.dev/docver/internal/errors"
	"docver.dev/docver/internal/output"
	"docver.dev/docver/internal/runtime"
)

// Options contains options for deleting versions
type Options struct {
	// Identifiers are the tags to remove, or aliases to unbind.
	Identifiers []string
	// All removes every deployed version.
	All                bool
	Message            string
	Push               bool
	IgnoreRemoteStatus bool
}

// Action removes versions from the deploy branch.
//
// A tag removes the version directory together with every alias bound to it.
// An alias that is not also a tag is only unbound.
func Action(ctx *runtime.Context, opts Options) error {
	cfg := ctx.Config
	splog := ctx.Splog

	if !opts.All && len(opts.Identifiers) == 0 {
		return fmt.Errorf("specify the versions to delete, or --all")
	}
	if opts.All && len(opts.Identifiers) > 0 {
		return fmt.Errorf("--all cannot be combined with version arguments")
	}

	base, err := actions.PrepareBase(ctx, actions.BaseOptions{
		Fetch:              true,
		IgnoreRemoteStatus: opts.IgnoreRemoteStatus,
	})
	if err != nil {
		return err
	}
	if !base.HasParent() {
		if opts.All {
			return fmt.Errorf("nothing to delete: %s does not exist", cfg.Branch)
		}
		return docvererrors.NewVersionNotFoundError(opts.Identifiers[0])
	}

	if opts.All {
		return deleteAll(ctx, base, opts)
	}

	registry := base.Registry
	var removedTags, removedAliases []string
	for _, identifier := range opts.Identifiers {
		switch {
		case registry.Remove(identifier):
			removedTags = append(removedTags, identifier)
		case registry.RemoveAlias(identifier):
			removedAliases = append(removedAliases, identifier)
		default:
			return docvererrors.NewVersionNotFoundError(identifier)
		}
	}

	files, err := actions.MetadataFiles(ctx, registry)
	if err != nil {
		return err
	}
	deletes := actions.MetadataPaths(ctx)
	for _, tag := range removedTags {
		deletes = append(deletes, cfg.Join(tag))
	}

	message := opts.Message
	if message == "" {
		message = fmt.Sprintf("Removed %s%s with docver %s",
			strings.Join(opts.Identifiers, ", "), actions.InPrefix(ctx), ctx.Version)
	}

	err = actions.Publish(ctx, base, actions.PublishOptions{
		Message: message,
		Deletes: deletes,
		Files:   files,
		Push:    opts.Push,
	})
	if err != nil {
		return err
	}

	for _, tag := range removedTags {
		splog.Info("Deleted version %s.", output.ColorTag(tag))
	}
	for _, alias := range removedAliases {
		splog.Info("Deleted alias %s.", output.ColorAlias(alias))
	}
	return nil
}

func deleteAll(ctx *runtime.Context, base *actions.Base, opts Options) error {
	cfg := ctx.Config

	message := opts.Message
	if message == "" {
		message = fmt.Sprintf("Removed everything%s with docver %s", actions.InPrefix(ctx), ctx.Version)
	}

	publish := actions.PublishOptions{
		Message: message,
		Push:    opts.Push,
	}
	if cfg.DeployPrefix == "" {
		publish.DeleteAll = true
	} else {
		publish.Deletes = []string{cfg.DeployPrefix}
	}

	if err := actions.Publish(ctx, base, publish); err != nil {
		return err
	}
	ctx.Splog.Info("Deleted all %d versions from %s.", base.Registry.Len(), output.ColorDim(cfg.Branch))
	return nil
}
