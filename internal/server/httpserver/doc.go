// Package httpserver provides the diagnostics HTTP server for loginchallenge.
//
// The server is optional and exposes read-only endpoints:
//
//   - GET /healthz: liveness probe
//   - GET /status: controller state as JSON
//   - GET /metrics: Prometheus metrics
//
// It uses the Go standard library net/http with a small middleware chain
// (request ID, panic recovery, access log).
package httpserver
