package config

const (
	defaultCorpusRoot   = "~/nltk_data/corpora/crubadan"
	defaultCorpusSubdir = "corpora/crubadan"
	defaultExportDBPath = "~/.local/share/crubadan/ngrams.db"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Corpus: Corpus{},
		Export: Export{
			DBPath: defaultExportDBPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
