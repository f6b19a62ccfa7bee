// Package command provides the loginchallenge command-line application.
//
// It uses urfave/cli/v2 for flag and command parsing. Without a subcommand
// the interactive REPL starts; subcommands cover one-shot use:
//
//   - login: log in, print the profile and log out
//   - config show / config validate: inspect the merged configuration
//   - hash-password: print an Argon2id hash for auth.password_hash
//   - version: print build information
//
// runtime.go wires the session store, gateways, controller, metrics,
// diagnostics server, configuration watcher and shutdown hooks.
package command
