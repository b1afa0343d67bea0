package ngramstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"crubadan/internal/corpus"
)

var (
	// ErrLocked reports that another process holds the export lock.
	ErrLocked = errors.New("export database locked")
	// ErrNotFound reports a language absent from the export.
	ErrNotFound = errors.New("not found")
)

// Store manages an n-gram export database backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Language is one language's distribution as written to the store.
type Language struct {
	ISO      string
	Crubadan string
	Counts   corpus.FreqDist
}

// LanguageSummary is the per-language row kept alongside the n-grams.
type LanguageSummary struct {
	ISO      string `json:"iso"`
	Crubadan string `json:"crubadan"`
	Bins     int    `json:"bins"`
	Total    int    `json:"total"`
}

// Run describes one completed export.
type Run struct {
	ID         string    `json:"id"`
	CorpusRoot string    `json:"corpus_root"`
	ExportedAt time.Time `json:"exported_at"`
	Languages  int       `json:"languages"`
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

// Open creates or opens the export database at path and takes the export lock.
// The lock is held until Close.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire export lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is held by another process", ErrLocked, lock.Path())
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// OpenReadOnly opens an existing export database for queries only. It takes
// no lock, creates nothing, and rejects writes at the connection level.
func OpenReadOnly(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no export database at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat export database: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("export database %s is not a regular file", path)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	store := &Store{db: db, path: path}
	if err := store.checkSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database and, for writable stores, the export lock.
func (s *Store) Close() error {
	dbErr := s.db.Close()
	if s.lock == nil {
		return dbErr
	}
	return errors.Join(dbErr, s.lock.Unlock())
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Replace swaps the stored contents for langs and records an export run.
func (s *Store) Replace(ctx context.Context, corpusRoot string, langs []Language) (Run, error) {
	ctx = ensureContext(ctx)
	run := Run{
		ID:         uuid.NewString(),
		CorpusRoot: corpusRoot,
		ExportedAt: time.Now().UTC().Round(0),
		Languages:  len(langs),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin export tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ngrams"); err != nil {
		return Run{}, fmt.Errorf("clear ngrams: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM languages"); err != nil {
		return Run{}, fmt.Errorf("clear languages: %w", err)
	}

	langStmt, err := tx.PrepareContext(ctx, "INSERT INTO languages (iso, crubadan, bins, total) VALUES (?, ?, ?, ?)")
	if err != nil {
		return Run{}, fmt.Errorf("prepare language insert: %w", err)
	}
	defer langStmt.Close()
	ngramStmt, err := tx.PrepareContext(ctx, "INSERT INTO ngrams (iso, ngram, count) VALUES (?, ?, ?)")
	if err != nil {
		return Run{}, fmt.Errorf("prepare ngram insert: %w", err)
	}
	defer ngramStmt.Close()

	for _, lang := range langs {
		if _, err := langStmt.ExecContext(ctx, lang.ISO, lang.Crubadan, lang.Counts.B(), lang.Counts.N()); err != nil {
			return Run{}, fmt.Errorf("insert language %s: %w", lang.ISO, err)
		}
		for ngram, count := range lang.Counts {
			if _, err := ngramStmt.ExecContext(ctx, lang.ISO, ngram, count); err != nil {
				return Run{}, fmt.Errorf("insert ngram for %s: %w", lang.ISO, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO export_runs (id, corpus_root, exported_at, languages) VALUES (?, ?, ?, ?)",
		run.ID, run.CorpusRoot, run.ExportedAt.UnixNano(), run.Languages,
	); err != nil {
		return Run{}, fmt.Errorf("record export run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit export: %w", err)
	}
	return run, nil
}

// Languages lists the exported languages ordered by ISO code.
func (s *Store) Languages(ctx context.Context) ([]LanguageSummary, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT iso, crubadan, bins, total FROM languages ORDER BY iso")
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()

	var out []LanguageSummary
	for rows.Next() {
		var summary LanguageSummary
		if err := rows.Scan(&summary.ISO, &summary.Crubadan, &summary.Bins, &summary.Total); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

// Counts returns the exported distribution for iso.
func (s *Store) Counts(ctx context.Context, iso string) (corpus.FreqDist, error) {
	ctx = ensureContext(ctx)

	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM languages WHERE iso = ?", iso).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check language %s: %w", iso, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: language %q", ErrNotFound, iso)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT ngram, count FROM ngrams WHERE iso = ?", iso)
	if err != nil {
		return nil, fmt.Errorf("query ngrams for %s: %w", iso, err)
	}
	defer rows.Close()

	dist := make(corpus.FreqDist)
	for rows.Next() {
		var ngram string
		var count int
		if err := rows.Scan(&ngram, &count); err != nil {
			return nil, fmt.Errorf("scan ngram: %w", err)
		}
		dist[ngram] = count
	}
	return dist, rows.Err()
}

// LatestRun returns the most recent export run. The boolean is false when
// nothing has been exported yet.
func (s *Store) LatestRun(ctx context.Context) (Run, bool, error) {
	var run Run
	var exportedAt int64
	err := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT id, corpus_root, exported_at, languages FROM export_runs ORDER BY exported_at DESC, rowid DESC LIMIT 1",
	).Scan(&run.ID, &run.CorpusRoot, &exportedAt, &run.Languages)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("query latest run: %w", err)
	}
	run.ExportedAt = time.Unix(0, exportedAt).UTC()
	return run, true, nil
}
