// Package logger provides structured logging for the login challenge.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, configuration and the process default
//   - context.go: Context-aware logging with operation IDs
//   - redact.go: Sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Dynamic log level adjustment
//   - Automatic masking of password material
//   - Context propagation of operation IDs
package logger
