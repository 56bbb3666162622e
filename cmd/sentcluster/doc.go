// Package main hosts the sentcluster CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into clustering
// runs, similarity matrix dumps, run history maintenance, and configuration
// scaffolding. It centralizes configuration resolution, flag overrides, and
// logger setup so subcommands can focus on presentation.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
