package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/issuebuilder/internal/catalog"
	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/images"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
	"git.home.luguber.info/inful/issuebuilder/internal/templates"
)

// IssuePage is the file name of every issue's HTML page.
const IssuePage = "index.html"

// stageRenderIssues processes the issues one at a time in sorted order.
func stageRenderIssues(ctx context.Context, bs *buildState) error {
	ext := bs.cfg.Images.OptimizedFormat.Extension()
	for _, id := range bs.issueIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		issue, err := catalog.LoadIssue(bs.cfg.Paths.Issues, id, ext)
		if err != nil {
			return err
		}
		if err := renderIssue(ctx, bs, issue); err != nil {
			return err
		}
	}
	return nil
}

func renderIssue(ctx context.Context, bs *buildState, issue catalog.Issue) error {
	outDir := filepath.Join(bs.output, issue.ID)
	if err := os.RemoveAll(outDir); err != nil {
		return ferrors.FileSystemError("reset issue output").WithCause(err).
			WithContext("issue", issue.ID).Build()
	}
	if err := bs.images.RenderIssue(ctx, issue, outDir); err != nil {
		return err
	}

	if bs.aspect == "" && len(issue.Pages) > 0 {
		w, h, err := images.Dimensions(filepath.Join(issue.Dir, issue.Pages[0].File))
		if err != nil {
			bs.warn(StageRenderIssues, err, "Cover dimensions unreadable; trying next issue", logfields.Issue(issue.ID))
		} else {
			issue.CoverAspect = images.AspectRatio(w, h)
			bs.aspect = issue.CoverAspect
		}
	}

	html, err := bs.templates.RenderIssue(templates.IssueData{
		Layout: bs.layout("../"),
		Issue:  issue.ID,
		Pages:  issue.Pages,
		Title:  issue.Title.Display,
		Arc:    issue.Title.Arc,
		Cycle:  issue.Title.Cycle,
	})
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outDir, IssuePage), html); err != nil {
		return err
	}

	bs.summaries = append(bs.summaries, templates.IssueSummary{
		ID:    issue.ID,
		Title: issue.Title.Display,
		Cover: issue.Cover,
		Arc:   issue.Title.Arc,
		Cycle: issue.Title.Cycle,
	})
	bs.report.Issues++
	bs.report.Pages += len(issue.Pages)
	slog.Info("Rendered issue", logfields.Issue(issue.ID), logfields.Count(len(issue.Pages)))
	return nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return ferrors.FileSystemError("write page").WithCause(err).
			WithContext("path", path).Build()
	}
	return nil
}
