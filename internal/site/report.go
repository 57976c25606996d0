package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/git"
	"git.home.luguber.info/inful/issuebuilder/internal/metrics"
	"git.home.luguber.info/inful/issuebuilder/internal/version"
)

// BuildOutcome is the final result state of a build.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// DiagnosticSeverity is the severity of a Diagnostic.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// Diagnostic is one machine-readable problem recorded during a build.
type Diagnostic struct {
	Stage    StageName          `json:"stage"`
	Severity DiagnosticSeverity `json:"severity"`
	Category string             `json:"category"`
	Message  string             `json:"message"`
}

// StageCount aggregates the outcomes of a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// BuildReport summarizes one build run.
type BuildReport struct {
	SchemaVersion  int
	BuildID        string
	Version        string
	Revision       git.Revision
	Start          time.Time
	End            time.Time
	Issues         int // issues rendered
	Pages          int // pages rendered across all issues
	Errors         []error
	Warnings       []error
	Diagnostics    []Diagnostic
	StageDurations map[string]time.Duration
	StageCounts    map[StageName]StageCount
	Outcome        BuildOutcome
}

func newBuildReport(buildID string) *BuildReport {
	return &BuildReport{
		SchemaVersion:  1,
		BuildID:        buildID,
		Version:        version.Version,
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
		StageCounts:    make(map[StageName]StageCount),
	}
}

// addStageError records se under Errors or Warnings by its kind.
func (r *BuildReport) addStageError(se *StageError) {
	if se.Kind == StageErrorWarning {
		r.addWarning(se.Stage, se)
		return
	}
	r.Errors = append(r.Errors, se)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Stage:    se.Stage,
		Severity: SeverityError,
		Category: string(ferrors.GetCategory(se.Err)),
		Message:  se.Error(),
	})
}

func (r *BuildReport) addWarning(stage StageName, err error) {
	r.Warnings = append(r.Warnings, err)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Stage:    stage,
		Severity: SeverityWarning,
		Category: string(ferrors.GetCategory(err)),
		Message:  err.Error(),
	})
}

func (r *BuildReport) recordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	sc := r.StageCounts[stage]
	switch res {
	case StageResultSuccess:
		sc.Success++
	case StageResultWarning:
		sc.Warning++
	case StageResultFatal:
		sc.Fatal++
	case StageResultCanceled:
		sc.Canceled++
	}
	r.StageCounts[stage] = sc
	recorder.IncStageResult(string(stage), res.label())
}

// Finish sets the end time and derives the outcome.
func (r *BuildReport) Finish() {
	r.End = time.Now()
	r.DeriveOutcome()
}

// DeriveOutcome sets Outcome from the recorded errors and warnings.
func (r *BuildReport) DeriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("issues=%d pages=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.Issues, r.Pages, r.End.Sub(r.Start).Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), r.Outcome)
}

// BuildReportSerializable is the JSON form of a BuildReport.
type BuildReportSerializable struct {
	SchemaVersion  int                      `json:"schema_version"`
	BuildID        string                   `json:"build_id"`
	Version        string                   `json:"version"`
	Revision       git.Revision             `json:"revision"`
	Start          time.Time                `json:"start"`
	End            time.Time                `json:"end"`
	Issues         int                      `json:"issues"`
	Pages          int                      `json:"pages"`
	Errors         []string                 `json:"errors"`
	Warnings       []string                 `json:"warnings"`
	Diagnostics    []Diagnostic             `json:"diagnostics"`
	StageDurations map[string]time.Duration `json:"stage_durations"`
	StageCounts    map[string]StageCount    `json:"stage_counts"`
	Outcome        string                   `json:"outcome"`
}

// SanitizedCopy converts the report into its JSON form.
func (r *BuildReport) SanitizedCopy() *BuildReportSerializable {
	s := &BuildReportSerializable{
		SchemaVersion:  r.SchemaVersion,
		BuildID:        r.BuildID,
		Version:        r.Version,
		Revision:       r.Revision,
		Start:          r.Start,
		End:            r.End,
		Issues:         r.Issues,
		Pages:          r.Pages,
		Errors:         errorStrings(r.Errors),
		Warnings:       errorStrings(r.Warnings),
		Diagnostics:    r.Diagnostics,
		StageDurations: r.StageDurations,
		StageCounts:    make(map[string]StageCount, len(r.StageCounts)),
		Outcome:        string(r.Outcome),
	}
	if s.Diagnostics == nil {
		s.Diagnostics = []Diagnostic{}
	}
	for k, v := range r.StageCounts {
		s.StageCounts[string(k)] = v
	}
	return s
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

// Persist writes the report as JSON to path through a temporary file.
func (r *BuildReport) Persist(path string) error {
	if r.End.IsZero() {
		r.Finish()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("ensure directory for report: %w", err)
	}
	jb, err := json.MarshalIndent(r.SanitizedCopy(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, jb, 0o600); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report json: %w", err)
	}
	return nil
}
