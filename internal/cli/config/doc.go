// Package config provides the loginchallenge application configuration.
//
// This package defines the configuration tree and its lifecycle:
//
//   - spec.go: Config struct and sections
//   - default.go: default values
//   - loader.go: loading from defaults, YAML file, environment and flags
//   - verify.go: validation
//   - sanitize.go: masking secrets before display or logging
//   - convert.go: mapping onto core service configuration
//
// Sources are merged with the priority flags > environment > file > defaults.
// Environment variables use the LOGINCHALLENGE_ prefix, for example
// LOGINCHALLENGE_SESSION_TTL=45s.
package config
