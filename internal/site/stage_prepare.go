package site

import (
	"context"
	"os"

	"git.home.luguber.info/inful/issuebuilder/internal/catalog"
	"git.home.luguber.info/inful/issuebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/images"
	"git.home.luguber.info/inful/issuebuilder/internal/templates"
)

// stagePrepareOutput checks the output path and every build input, then
// recreates the staging directory the remaining stages write to. The output
// root itself is only replaced by stagePublishOutput.
func stagePrepareOutput(_ context.Context, bs *buildState) error {
	if err := config.CheckOutput(bs.cfg.Paths, bs.final); err != nil {
		return err
	}

	ids, err := catalog.ListIssues(bs.cfg.Paths.Issues)
	if err != nil {
		return err
	}
	bs.issueIDs = ids

	tmpl, err := templates.Load(TemplatesSource(bs.cfg.Paths.Templates))
	if err != nil {
		return err
	}
	bs.templates = tmpl

	renderer, err := images.NewRenderer(bs.cfg.Images, bs.recorder)
	if err != nil {
		return err
	}
	bs.images = renderer

	stage := stagingDir(bs.final)
	if err := os.RemoveAll(stage); err != nil {
		return ferrors.FileSystemError("remove stale staging directory").
			WithCause(err).WithContext("path", stage).Build()
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return ferrors.FileSystemError("create staging directory").
			WithCause(err).WithContext("path", stage).Build()
	}
	bs.output = stage
	return nil
}

// TemplatesSource maps the configured templates path to the argument for
// templates.Load: the default path falls back to the embedded theme when it
// does not exist, any other path is used as given.
func TemplatesSource(dir string) string {
	if dir == config.DefaultTemplatesDir {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return ""
		}
	}
	return dir
}
