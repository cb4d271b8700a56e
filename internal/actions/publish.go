package actions

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	"docver.dev/docver/internal/fastimport"
	"docver.dev/docver/internal/runtime"
	"docver.dev/docver/internal/versions"
)

// NoJekyllFileName disables Jekyll processing on GitHub Pages
const NoJekyllFileName = ".nojekyll"

// PublishOptions describes the commit Publish writes on top of a Base
type PublishOptions struct {
	Message   string
	DeleteAll bool
	Deletes   []string
	Files     []fastimport.File
	Push      bool
}

// MetadataPaths returns the registry files that every commit rewrites
func MetadataPaths(ctx *runtime.Context) []string {
	return []string{
		ctx.Config.Join(versions.FileName),
		ctx.Config.Join(versions.RedirectsFileName),
	}
}

// MetadataFiles renders the registry files stored next to the versions:
// versions.json, the alias redirects and the .nojekyll marker at the root.
func MetadataFiles(ctx *runtime.Context, registry *versions.Registry) ([]fastimport.File, error) {
	cfg := ctx.Config

	document, err := registry.Document()
	if err != nil {
		return nil, err
	}
	files := []fastimport.File{
		fastimport.BytesFile(cfg.Join(versions.FileName), fastimport.ModeFile, document),
	}
	if cfg.Redirects {
		redirects := registry.AliasRedirectsUnder(cfg.DeployPrefix, cfg.DefaultAlias)
		files = append(files, fastimport.BytesFile(cfg.Join(versions.RedirectsFileName), fastimport.ModeFile, []byte(redirects)))
	}
	if cfg.NoJekyll {
		files = append(files, fastimport.BytesFile(NoJekyllFileName, fastimport.ModeFile, nil))
	}
	return files, nil
}

// Publish imports one commit on the deploy branch and optionally pushes it
func Publish(ctx *runtime.Context, base *Base, opts PublishOptions) error {
	cfg := ctx.Config

	commit := fastimport.NewCommit(fastimport.CommitOptions{
		Ref:       plumbing.NewBranchReferenceName(cfg.Branch).String(),
		Message:   opts.Message,
		Parent:    base.ParentRef(),
		DeleteAll: opts.DeleteAll,
		Deletes:   opts.Deletes,
		Files:     opts.Files,
		Identity:  ctx.Identity,
	})

	ctx.Splog.Debug("Importing %d files onto %s.", len(commit.Files()), cfg.Branch)
	if err := ctx.Importer().Import(ctx, commit); err != nil {
		return err
	}

	if !opts.Push {
		return nil
	}
	ctx.Splog.Info("Pushing %s to %s...", cfg.Branch, cfg.Remote)
	if err := ctx.Runner.Push(ctx, cfg.Remote, cfg.Branch); err != nil {
		return err
	}
	return nil
}

// DescribeHead returns the abbreviated commit the source tree was built from,
// or "unknown" when HEAD does not resolve.
func DescribeHead(ctx *runtime.Context, base *Base) string {
	short, err := base.Repo.HeadShortHash()
	if err != nil {
		ctx.Splog.Debug("Could not resolve HEAD: %v", err)
		return "unknown"
	}
	return short
}

// InPrefix returns " in <prefix>" for messages about a prefixed deploy, or ""
func InPrefix(ctx *runtime.Context) string {
	if ctx.Config.DeployPrefix == "" {
		return ""
	}
	return fmt.Sprintf(" in %s", ctx.Config.DeployPrefix)
}
