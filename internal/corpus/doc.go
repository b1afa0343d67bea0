// Package corpus reads the An Crúbadán character trigram corpus.
//
// A corpus root holds a tab-separated mapping file (table.txt) that pairs the
// corpus' own language codes with ISO 639-3 codes, and one
// <code>-3grams.txt file per language listing "<count> <ngram>" lines.
//
// Open checks that the root is a locally installed directory, loads the mapping
// table, and eagerly loads every discoverable n-gram file into a per-reader
// cache keyed by ISO code. Files that cannot be mapped or parsed during that
// bulk load are recorded as skipped rather than failing Open; direct loads via
// LoadLang surface the error instead.
//
// Lookups on a Reader are safe for concurrent use once Open has returned.
package corpus
