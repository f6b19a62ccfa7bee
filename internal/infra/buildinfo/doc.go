// Package buildinfo provides build information for loginchallenge.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/login-challenge-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Fields left unset fall back to the module build info embedded by the Go
// toolchain (VCS revision and time, Go version).
package buildinfo
