package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
	"git.home.luguber.info/inful/issuebuilder/internal/metrics"
)

// StageName identifies a build stage.
type StageName string

// Stages in execution order.
const (
	StagePrepareOutput StageName = "prepare_output"
	StageRenderIssues  StageName = "render_issues"
	StageRenderIndex   StageName = "render_index"
	StageRenderAbout   StageName = "render_about"
	StageCopyStatic    StageName = "copy_static"
	StagePublishOutput StageName = "publish_output"
)

// StageErrorKind classifies the outcome of a stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a classified stage failure wrapping its cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageResult is the recorded outcome of one stage.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

func (r StageResult) label() metrics.ResultLabel {
	switch r {
	case StageResultWarning:
		return metrics.ResultWarning
	case StageResultFatal:
		return metrics.ResultFatal
	case StageResultCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultSuccess
	}
}

type stage func(ctx context.Context, bs *buildState) error

type stageDef struct {
	name StageName
	fn   stage
}

// classify turns a stage's return value into a StageError. Plain errors are
// fatal unless they come from context cancellation.
func classify(name StageName, err error) *StageError {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newCanceledStageError(name, err)
	}
	if _, ok := ferrors.AsClassified(err); !ok {
		err = ferrors.BuildError("stage failed").WithCause(err).
			WithContext("stage", string(name)).Build()
	}
	return newFatalStageError(name, err)
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage.
func runStages(ctx context.Context, bs *buildState, stages []stageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.name, err)
			bs.report.addStageError(se)
			bs.report.recordStageResult(st.name, StageResultCanceled, bs.recorder)
			return se
		}

		warningsBefore := len(bs.report.Warnings)
		slog.Debug("Stage start", logfields.Stage(string(st.name)))

		t0 := time.Now()
		se := classify(st.name, st.fn(ctx, bs))
		dur := time.Since(t0)

		bs.report.StageDurations[string(st.name)] = dur
		bs.recorder.ObserveStageDuration(string(st.name), dur)

		result := StageResultSuccess
		if se != nil {
			bs.report.addStageError(se)
			switch se.Kind {
			case StageErrorWarning:
				result = StageResultWarning
			case StageErrorCanceled:
				result = StageResultCanceled
			default:
				result = StageResultFatal
			}
		} else if len(bs.report.Warnings) > warningsBefore {
			result = StageResultWarning
		}
		bs.report.recordStageResult(st.name, result, bs.recorder)
		slog.Debug("Stage complete", logfields.Stage(string(st.name)), logfields.DurationMS(float64(dur)/float64(time.Millisecond)), slog.String("result", string(result)))

		if result == StageResultFatal || result == StageResultCanceled {
			return se
		}
	}
	return nil
}
