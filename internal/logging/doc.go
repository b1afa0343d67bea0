// Package logging builds the slog loggers used by the corpus reader, the export
// store, and the CLI.
//
// Console output is a single key=value line per record with the component as a
// prefix; JSON output uses slog's JSON handler with a "ts" key. Both write to
// stderr unless told otherwise.
package logging
