// Package metrics records build observability through a small Recorder
// interface.
//
// Builds default to NoopRecorder. The preview server swaps in a
// PrometheusRecorder registered on its own registry and serves it at /metrics,
// so repeated rebuilds accumulate in one place.
package metrics
