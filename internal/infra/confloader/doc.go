// Package confloader loads layered configuration with koanf and watches
// configuration files with fsnotify.
//
// Layers, lowest to highest priority:
//
//  1. Defaults (WithDefaults)
//  2. YAML file (WithConfigFile)
//  3. LOGINCHALLENGE_* environment variables
//  4. Overrides such as command-line flags (WithOverrides)
//
// Watcher coalesces bursts of writes into one notification per file.
package confloader
