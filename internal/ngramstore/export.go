package ngramstore

import (
	"context"
	"fmt"

	"crubadan/internal/corpus"
)

// Source is the subset of *corpus.Reader an export needs.
type Source interface {
	Root() string
	Loaded() []string
	LangFreq(iso string) (corpus.FreqDist, error)
	ISOToCrubadan(iso string) (string, bool)
}

// Export writes every language loaded by src into store.
func Export(ctx context.Context, store *Store, src Source) (Run, error) {
	loaded := src.Loaded()
	langs := make([]Language, 0, len(loaded))
	for _, iso := range loaded {
		dist, err := src.LangFreq(iso)
		if err != nil {
			return Run{}, fmt.Errorf("read %s: %w", iso, err)
		}
		code, _ := src.ISOToCrubadan(iso)
		langs = append(langs, Language{ISO: iso, Crubadan: code, Counts: dist})
	}
	return store.Replace(ctx, src.Root(), langs)
}
