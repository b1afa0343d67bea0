package testsupport

import (
	"path/filepath"
	"testing"

	"crubadan/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Corpus.Root = filepath.Join(base, "corpus")
	cfg.Export.DBPath = filepath.Join(base, "export", "ngrams.db")
	cfg.Logging.Level = "error"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCorpusRoot points the config at an existing corpus root.
func WithCorpusRoot(root string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Corpus.Root = root
	}
}
