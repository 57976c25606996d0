package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Rendition kinds produced for every page.
const (
	RenditionOriginal  = "original"
	RenditionThumbnail = "thumbnail"
	RenditionOptimized = "optimized"
)

// Recorder defines observability hooks for builds, stages and image work.
// Implementations must be safe for concurrent use: rendition hooks are called
// from the image task group.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome string) // success|warning|failed|canceled
	ObserveRendition(kind string, d time.Duration, success bool)
	AddPages(n int)
	SetRenderConcurrency(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not served).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)   {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)           {}
func (NoopRecorder) IncStageResult(string, ResultLabel)           {}
func (NoopRecorder) IncBuildOutcome(string)                       {}
func (NoopRecorder) ObserveRendition(string, time.Duration, bool) {}
func (NoopRecorder) AddPages(int)                                 {}
func (NoopRecorder) SetRenderConcurrency(int)                     {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
