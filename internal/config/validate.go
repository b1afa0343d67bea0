package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCorpus(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCorpus() error {
	if c.Corpus.Root == "" {
		return errors.New("corpus.root must be set")
	}
	if !filepath.IsAbs(c.Corpus.Root) {
		return fmt.Errorf("corpus.root must be absolute, got %q", c.Corpus.Root)
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.DBPath == "" {
		return errors.New("export.db_path must be set")
	}
	if c.Export.DBPath == c.Corpus.Root {
		return fmt.Errorf("export.db_path must not point at the corpus root %q", c.Corpus.Root)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
