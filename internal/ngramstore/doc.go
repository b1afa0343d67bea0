// Package ngramstore persists loaded n-gram distributions into SQLite.
//
// Downstream tools that prefer SQL over the plain-text corpus read the
// exported database instead of parsing the corpus themselves. Each export
// replaces the previous contents in one transaction and records an export
// run. An advisory lock file next to the database keeps concurrent exports
// from interleaving.
package ngramstore
