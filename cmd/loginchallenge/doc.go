// Package main provides the entry point for loginchallenge.
//
// loginchallenge simulates a login → home flow against an in-process
// backend with a 30 second session lifetime:
//
//   - Interactive mode (no subcommand): login screen, then home screen
//   - One-shot login with profile output and exit status per error kind
//   - Configuration inspection and password hashing
//
// Usage:
//
//	loginchallenge
//	loginchallenge --no-failures --metrics-addr 127.0.0.1:9090
//	loginchallenge login koher 1234 -o json
//	loginchallenge config show
package main
