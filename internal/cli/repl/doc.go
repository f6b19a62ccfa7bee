// Package repl provides the interactive terminal front end for loginchallenge.
//
// The REPL has two screens:
//
//   - login screen: login <id> <password>
//   - home screen: reload, show, status, logout
//
// help, history and exit are available everywhere. Failures are shown as
// short alerts chosen by error kind; details go to the log only. When the
// session expires the REPL returns to the login screen on its own.
//
// Files:
//
//   - repl.go: loop, screens and event handling
//   - commands.go: command table and handlers
//   - alert.go: error kind to alert wording
//   - completer.go: command completion and suggestions
//   - history.go: command history persistence
package repl
