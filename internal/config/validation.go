package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

// Validate checks value ranges and path relationships.
func Validate(cfg *Config) error {
	img := cfg.Images
	if img.ThumbnailWidth < 1 {
		return invalid("images.thumbnail_width", img.ThumbnailWidth, "must be positive")
	}
	if img.OptimizedMaxWidth < 1 {
		return invalid("images.optimized_max_width", img.OptimizedMaxWidth, "must be positive")
	}
	if img.OptimizedQuality < 1 || img.OptimizedQuality > 100 {
		return invalid("images.optimized_quality", img.OptimizedQuality, "must be between 1 and 100")
	}
	if img.Concurrency < 0 {
		return invalid("images.concurrency", img.Concurrency, "must not be negative")
	}
	if cfg.Preview.Port < 1 || cfg.Preview.Port > 65535 {
		return invalid("preview.port", cfg.Preview.Port, "must be a TCP port")
	}
	if _, err := cfg.Preview.Rescan(); err != nil {
		return invalid("preview.rescan_interval", cfg.Preview.RescanInterval, err.Error())
	}

	if err := CheckOutput(cfg.Paths, cfg.Paths.Output); err != nil {
		return err
	}
	return nil
}

// Rescan parses RescanInterval; zero means periodic rescans are disabled.
func (p PreviewConfig) Rescan() (time.Duration, error) {
	if p.RescanInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.RescanInterval)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}
	return d, nil
}

// CheckOutput rejects an output root that a build would not be allowed to
// delete: the working directory or one of its parents, a directory holding a
// source path, or a directory inside one. output is the effective output
// path, which may differ from p.Output when overridden on the command line.
// The staging and backup siblings of the output root are checked as well.
func CheckOutput(p PathsConfig, output string) error {
	out, err := filepath.Abs(output)
	if err != nil {
		return ferrors.ValidationError("resolve output directory").WithCause(err).
			WithContext("path", output).Build()
	}
	if wd, err := os.Getwd(); err == nil && within(wd, out) {
		return invalid("paths.output", output, "must not contain the working directory")
	}

	sources := []struct{ name, path string }{
		{"paths.issues", p.Issues},
		{"paths.templates", p.Templates},
		{"paths.content", p.Content},
		{"paths.assets", p.Assets},
	}
	generated := []string{out, out + StagingSuffix, out + BackupSuffix}
	for _, src := range sources {
		if src.path == "" {
			continue
		}
		abs, err := filepath.Abs(src.path)
		if err != nil {
			continue
		}
		for _, dir := range generated {
			if within(abs, dir) {
				return invalid(src.name, src.path, "must not be inside the output directory "+output)
			}
		}
		if within(out, abs) {
			return invalid("paths.output", output, "must not be inside "+src.name)
		}
	}
	return nil
}

func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

func invalid(field string, value any, reason string) error {
	return ferrors.ValidationError(fmt.Sprintf("%s %s", field, reason)).
		WithContext("value", value).
		Build()
}
