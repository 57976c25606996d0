package site

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
	"git.home.luguber.info/inful/issuebuilder/internal/templates"
)

// stageCopyStatic copies the theme's stylesheet and script and the assets
// tree into the output root. Every failure here is a warning.
func stageCopyStatic(_ context.Context, bs *buildState) error {
	for _, name := range []string{templates.StylesAsset, templates.ThemeAsset} {
		data, err := bs.templates.Asset(name)
		if err != nil {
			bs.warn(StageCopyStatic, err, "Theme file missing", slog.String("asset", name))
			continue
		}
		dst := filepath.Join(bs.output, name)
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			bs.warn(StageCopyStatic, ferrors.AssetError("write theme file").WithCause(err).
				WithContext("path", dst).Build(), "Failed to copy theme file", logfields.Path(dst))
		}
	}

	assets := bs.cfg.Paths.Assets
	if _, err := os.Stat(assets); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No assets directory", logfields.Path(assets))
			return nil
		}
	}
	if err := CopyDir(assets, bs.output); err != nil {
		bs.warn(StageCopyStatic, ferrors.AssetError("copy assets").WithCause(err).
			WithContext("path", assets).Build(), "Failed to copy assets", logfields.Path(assets))
	}
	return nil
}
