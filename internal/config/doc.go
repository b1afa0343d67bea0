// Package config loads, normalizes, and validates crubadan configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CRUBADAN_ROOT and NLTK_DATA when locating the installed corpus.
//
// Always obtain settings through this package so the reader and the CLI
// receive absolute paths and canonical log settings.
package config
