// Package metric provides Prometheus metrics for loginchallenge.
//
// Registry owns a private prometheus.Registry so that several instances can
// coexist in tests. It implements the controller's Recorder interface.
//
// Metrics include:
//
//   - Operation counters and latency histograms per operation and result
//   - In-flight gauges per operation
//   - Active session gauge and ended-session counters per reason
//   - Go runtime and process collectors
//
// Metrics are exposed at /metrics in Prometheus text format.
package metric
