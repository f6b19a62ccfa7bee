// Package output provides output formatting for loginchallenge.
//
// This package handles all terminal output formatting:
//
//   - formatter.go: Formatter interface and factory
//   - table.go: key/value and row tables
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//   - spinner.go: activity indicator for backend calls
//   - progress.go: bar gauge for the session lifetime
package output
