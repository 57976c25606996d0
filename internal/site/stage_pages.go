package site

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
	"git.home.luguber.info/inful/issuebuilder/internal/templates"
)

// AboutContentFile is the optional about document inside the content directory.
const AboutContentFile = "about.json"

func stageRenderIndex(_ context.Context, bs *buildState) error {
	html, err := bs.templates.RenderIndex(templates.IndexData{
		Layout:      bs.layout(""),
		Issues:      bs.summaries,
		IndexAspect: bs.aspect,
	})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(bs.output, templates.IndexTemplate), html)
}

func stageRenderAbout(_ context.Context, bs *buildState) error {
	html, err := bs.templates.RenderAbout(templates.AboutData{
		Layout: bs.layout(""),
		About:  loadAbout(bs),
	})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(bs.output, templates.AboutTemplate), html)
}

// loadAbout returns the decoded about document, or nil when it is absent or
// unusable.
func loadAbout(bs *buildState) any {
	path := filepath.Join(bs.cfg.Paths.Content, AboutContentFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			bs.warn(StageRenderAbout, ferrors.AssetError("read about content").WithCause(err).
				WithContext("path", path).Build(), "Failed to load about content", logfields.Path(path))
		}
		return nil
	}
	var about any
	if err := json.Unmarshal(raw, &about); err != nil {
		bs.warn(StageRenderAbout, ferrors.AssetError("invalid about content").WithCause(err).
			WithContext("path", path).Build(), "Failed to load about content", logfields.Path(path))
		return nil
	}
	return about
}
