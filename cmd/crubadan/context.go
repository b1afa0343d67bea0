package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"crubadan/internal/config"
	"crubadan/internal/corpus"
	"crubadan/internal/logging"
)

type rootFlags struct {
	config   string
	root     string
	logLevel string
}

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	readerOnce sync.Once
	reader     *corpus.Reader
	readerErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if root := strings.TrimSpace(c.flags.root); root != "" {
			expanded, err := config.ExpandPath(root)
			if err != nil {
				c.configErr = fmt.Errorf("resolve --root: %w", err)
				return
			}
			cfg.Corpus.Root = expanded
		}
		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
}

// openReader loads the corpus once per invocation.
func (c *commandContext) openReader(cmd *cobra.Command) (*corpus.Reader, error) {
	c.readerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.readerErr = err
			return
		}
		logger, err := c.logger(cmd)
		if err != nil {
			c.readerErr = err
			return
		}
		reader, err := corpus.Open(cfg.Corpus.Root, corpus.WithLogger(logger))
		if err != nil {
			c.readerErr = withHint(err)
			return
		}
		c.reader = reader
	})
	return c.reader, c.readerErr
}

// withHint appends the operator action that usually resolves err.
func withHint(err error) error {
	switch corpus.ErrorKind(err) {
	case corpus.KindConfiguration:
		return fmt.Errorf("%w (set corpus.root in the config, pass --root, or export CRUBADAN_ROOT)", err)
	case corpus.KindValidation:
		return fmt.Errorf("%w (the corpus files look corrupted; reinstall the crubadan corpus)", err)
	default:
		return err
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
