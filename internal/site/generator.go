package site

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/issuebuilder/internal/config"
	"git.home.luguber.info/inful/issuebuilder/internal/git"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
	"git.home.luguber.info/inful/issuebuilder/internal/metrics"
)

// Generator builds the static site described by a configuration.
type Generator struct {
	config    *config.Config
	outputDir string
	recorder  metrics.Recorder
}

// NewGenerator returns a Generator writing to outputDir, or to the configured
// output path when outputDir is empty.
func NewGenerator(cfg *config.Config, outputDir string) *Generator {
	if outputDir == "" {
		outputDir = cfg.Paths.Output
	}
	return &Generator{config: cfg, outputDir: outputDir, recorder: metrics.NoopRecorder{}}
}

// Config returns the generator's configuration.
func (g *Generator) Config() *config.Config { return g.config }

// OutputDir returns the directory the site is written to.
func (g *Generator) OutputDir() string { return g.outputDir }

// SetRecorder injects a metrics recorder (optional).
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	g.recorder = metrics.OrNoop(r)
	return g
}

func (g *Generator) stages() []stageDef {
	return []stageDef{
		{StagePrepareOutput, stagePrepareOutput},
		{StageRenderIssues, stageRenderIssues},
		{StageRenderIndex, stageRenderIndex},
		{StageRenderAbout, stageRenderAbout},
		{StageCopyStatic, stageCopyStatic},
		{StagePublishOutput, stagePublishOutput},
	}
}

// Generate runs a full build into a staging directory and replaces the output
// root with it once every stage has passed. The report is returned even when
// the build fails; the error is the first fatal or canceled StageError and the
// previous output is left as it was. When
// build.report_file is configured the report is written there as JSON.
func (g *Generator) Generate(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport(uuid.NewString())
	if rev, err := git.ReadRevision("."); err != nil {
		slog.Debug("Source revision unavailable", logfields.Error(err))
	} else {
		report.Revision = rev
	}

	log := slog.With(logfields.BuildID(report.BuildID))
	log.Info("Build started", logfields.Path(g.outputDir))

	bs := &buildState{
		cfg:      g.config,
		final:    g.outputDir,
		recorder: g.recorder,
		report:   report,
	}
	err := runStages(ctx, bs, g.stages())
	if err != nil {
		abortStaging(bs)
	}

	report.Finish()
	g.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	g.recorder.IncBuildOutcome(string(report.Outcome))

	if path := g.config.Build.ReportFile; path != "" {
		if perr := report.Persist(path); perr != nil {
			log.Warn("Failed to write build report", logfields.Path(path), logfields.Error(perr))
		}
	}

	if err != nil {
		log.Error("Build failed", logfields.Error(err), slog.String("outcome", string(report.Outcome)))
		return report, err
	}
	log.Info("Build complete",
		logfields.Count(report.Issues),
		slog.Int("pages", report.Pages),
		slog.Int("warnings", len(report.Warnings)),
		logfields.DurationMS(float64(report.End.Sub(report.Start))/float64(time.Millisecond)))
	return report, nil
}
