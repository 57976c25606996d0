package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "issuebuilder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration     *prom.HistogramVec
	buildDuration     prom.Histogram
	stageResults      *prom.CounterVec
	buildOutcome      *prom.CounterVec
	renditionDuration *prom.HistogramVec
	renditionResults  *prom.CounterVec
	pages             prom.Counter
	concurrency       prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.ExponentialBuckets(0.1, 2, 12),
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		renditionDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "rendition_duration_seconds",
			Help:      "Time spent producing one page artifact",
			Buckets:   prom.DefBuckets,
		}, []string{"kind"}),
		renditionResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rendition_results_total",
			Help:      "Page artifacts by kind and result",
		}, []string{"kind", "result"}),
		pages: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_rendered_total",
			Help:      "Pages whose artifacts were all written",
		}),
		concurrency: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "render_concurrency",
			Help:      "Task group limit used for the last issue",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.renditionDuration, pr.renditionResults, pr.pages, pr.concurrency)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveRendition(kind string, d time.Duration, success bool) {
	res := "failed"
	if success {
		res = "success"
		p.renditionDuration.WithLabelValues(kind).Observe(d.Seconds())
	}
	p.renditionResults.WithLabelValues(kind, res).Inc()
}

func (p *PrometheusRecorder) AddPages(n int) {
	p.pages.Add(float64(n))
}

func (p *PrometheusRecorder) SetRenderConcurrency(n int) {
	p.concurrency.Set(float64(n))
}
