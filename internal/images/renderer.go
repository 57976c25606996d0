package images

import (
	"context"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/issuebuilder/internal/catalog"
	"git.home.luguber.info/inful/issuebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
	"git.home.luguber.info/inful/issuebuilder/internal/metrics"
)

// Renderer produces page artifacts according to the images configuration.
type Renderer struct {
	cfg      config.ImagesConfig
	encode   encodeFunc
	recorder metrics.Recorder
}

// NewRenderer validates the encoder settings and returns a Renderer.
func NewRenderer(cfg config.ImagesConfig, recorder metrics.Recorder) (*Renderer, error) {
	enc, err := optimizedEncoder(cfg.OptimizedFormat, cfg.OptimizedQuality)
	if err != nil {
		return nil, ferrors.ConfigError("configure optimized encoder").WithCause(err).
			WithContext("format", string(cfg.OptimizedFormat)).Build()
	}
	return &Renderer{cfg: cfg, encode: enc, recorder: metrics.OrNoop(recorder)}, nil
}

// Concurrency is the task group limit used by RenderIssue.
func (r *Renderer) Concurrency() int {
	if r.cfg.Concurrency > 0 {
		return r.cfg.Concurrency
	}
	return runtime.NumCPU()
}

// RenderIssue writes the artifacts of every page of one issue into outDir and
// waits for all of them. The first failure cancels the pages not yet started
// and is returned.
func (r *Renderer) RenderIssue(ctx context.Context, issue catalog.Issue, outDir string) error {
	for _, sub := range []string{catalog.ThumbsDir, catalog.OptimizedDir} {
		if err := os.MkdirAll(filepath.Join(outDir, sub), 0o755); err != nil {
			return ferrors.FileSystemError("create issue output directory").WithCause(err).
				WithContext("issue", issue.ID).WithContext("path", sub).Build()
		}
	}

	limit := r.Concurrency()
	r.recorder.SetRenderConcurrency(limit)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, page := range issue.Pages {
		g.Go(func() error {
			return r.RenderPage(gctx, issue.ID, issue.Dir, outDir, page)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.recorder.AddPages(len(issue.Pages))
	return nil
}

// RenderPage copies the original and writes the thumbnail and the optimized
// rendition of one page.
func (r *Renderer) RenderPage(ctx context.Context, issueID, srcDir, outDir string, page catalog.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src := filepath.Join(srcDir, page.File)
	fail := func(err error, msg string) error {
		return ferrors.ImageError(msg).WithCause(err).
			WithContext("issue", issueID).WithContext("page", page.File).Build()
	}

	if err := r.timed(metrics.RenditionOriginal, func() error {
		return copyFile(src, filepath.Join(outDir, page.File))
	}); err != nil {
		return fail(err, "copy original")
	}

	img, err := imaging.Open(src)
	if err != nil {
		return fail(err, "decode page")
	}
	b := img.Bounds()

	if err := r.timed(metrics.RenditionThumbnail, func() error {
		return r.writeThumbnail(img, b, filepath.Join(outDir, page.Thumb))
	}); err != nil {
		return fail(err, "write thumbnail")
	}

	if err := r.timed(metrics.RenditionOptimized, func() error {
		w, h := OptimizedSize(b.Dx(), b.Dy(), r.cfg.OptimizedMaxWidth)
		out := img
		if w != b.Dx() {
			out = imaging.Resize(img, w, h, imaging.Lanczos)
		}
		return writeImage(filepath.Join(outDir, page.Optimized), out, r.encode)
	}); err != nil {
		return fail(err, "write optimized rendition")
	}

	slog.Debug("Rendered page", logfields.Issue(issueID), logfields.Page(page.File))
	return nil
}

func (r *Renderer) writeThumbnail(img image.Image, b image.Rectangle, path string) error {
	enc, err := sameFormatEncoder(path)
	if err != nil {
		return err
	}
	w, h := ThumbnailSize(b.Dx(), b.Dy(), r.cfg.ThumbnailWidth)
	return writeImage(path, imaging.Resize(img, w, h, imaging.Lanczos), enc)
}

func (r *Renderer) timed(kind string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.recorder.ObserveRendition(kind, time.Since(start), err == nil)
	return err
}
