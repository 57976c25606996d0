package site

import (
	"log/slog"

	"git.home.luguber.info/inful/issuebuilder/internal/config"
	"git.home.luguber.info/inful/issuebuilder/internal/images"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
	"git.home.luguber.info/inful/issuebuilder/internal/metrics"
	"git.home.luguber.info/inful/issuebuilder/internal/templates"
)

// buildState carries data between the stages of one build.
type buildState struct {
	cfg      *config.Config
	final    string // output root replaced on success
	output   string // directory the stages write to; the staging dir once prepared
	recorder metrics.Recorder
	report   *BuildReport

	issueIDs  []string
	images    *images.Renderer
	templates *templates.Renderer

	summaries []templates.IssueSummary
	aspect    string
}

// warn records a non-fatal problem and lets the stage continue.
func (bs *buildState) warn(stage StageName, err error, msg string, attrs ...any) {
	bs.report.addWarning(stage, err)
	slog.Warn(msg, append([]any{logfields.Stage(string(stage)), logfields.Error(err)}, attrs...)...)
}

func (bs *buildState) layout(root string) templates.Layout {
	return templates.Layout{
		Site: templates.Site{
			Title:       bs.cfg.Site.Title,
			Description: bs.cfg.Site.Description,
			BaseURL:     bs.cfg.Site.BaseURL,
			Logo:        bs.cfg.Site.Logo,
		},
		Root: root,
	}
}
