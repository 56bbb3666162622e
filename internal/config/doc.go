// Package config loads, normalizes, and validates sentcluster configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SENTCLUSTER_THRESHOLD. Command-line flags are applied on top of the loaded
// Config by the CLI, so every other package sees one sanitized value set with
// canonical stemmer, strategy, and log format names.
package config
