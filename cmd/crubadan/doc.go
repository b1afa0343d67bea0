// Package main hosts the crubadan CLI entrypoint and command graph.
//
// The Cobra-based command tree opens the configured corpus root, lists the
// languages it maps, prints per-language trigram frequencies, translates
// between corpus and ISO 639-3 codes, reports load problems, and exports the
// loaded distributions to SQLite. Configuration resolution and logger setup
// live in the shared command context so subcommands stay declarative.
package main
