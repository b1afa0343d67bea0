package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeCorpus(); err != nil {
		return err
	}
	if err := c.normalizeExport(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeCorpus() error {
	c.Corpus.Root = strings.TrimSpace(c.Corpus.Root)
	if c.Corpus.Root == "" {
		if value, ok := os.LookupEnv("CRUBADAN_ROOT"); ok {
			c.Corpus.Root = strings.TrimSpace(value)
		}
	}
	if c.Corpus.Root == "" {
		c.Corpus.Root = nltkDataRoot()
	}
	if c.Corpus.Root == "" {
		c.Corpus.Root = defaultCorpusRoot
	}
	var err error
	if c.Corpus.Root, err = expandPath(c.Corpus.Root); err != nil {
		return fmt.Errorf("corpus.root: %w", err)
	}
	return nil
}

// nltkDataRoot derives the corpus root from the first NLTK_DATA entry.
func nltkDataRoot() string {
	value, ok := os.LookupEnv("NLTK_DATA")
	if !ok {
		return ""
	}
	for _, entry := range filepath.SplitList(value) {
		if entry = strings.TrimSpace(entry); entry != "" {
			return filepath.Join(entry, filepath.FromSlash(defaultCorpusSubdir))
		}
	}
	return ""
}

func (c *Config) normalizeExport() error {
	c.Export.DBPath = strings.TrimSpace(c.Export.DBPath)
	if c.Export.DBPath == "" {
		c.Export.DBPath = defaultExportDBPath
	}
	var err error
	if c.Export.DBPath, err = expandPath(c.Export.DBPath); err != nil {
		return fmt.Errorf("export.db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
