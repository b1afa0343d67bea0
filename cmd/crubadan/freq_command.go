package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crubadan/internal/corpus"
	"crubadan/internal/language"
	"crubadan/internal/ngramstore"
)

type freqRow struct {
	Ngram string  `json:"ngram"`
	Count int     `json:"count"`
	Freq  float64 `json:"freq"`
}

type freqReport struct {
	ISO   string    `json:"iso"`
	Name  string    `json:"name"`
	Bins  int       `json:"bins"`
	Total int       `json:"total"`
	Top   []freqRow `json:"top"`
}

// freqSource resolves a distribution and lists the codes worth suggesting
// when the lookup misses.
type freqSource interface {
	lookup(iso string) (corpus.FreqDist, error)
	codes() []string
}

type readerSource struct{ reader *corpus.Reader }

func (s readerSource) lookup(iso string) (corpus.FreqDist, error) { return s.reader.LangFreq(iso) }
func (s readerSource) codes() []string                            { return s.reader.Loaded() }

type storeSource struct {
	cmd   *cobra.Command
	store *ngramstore.Store
}

func (s storeSource) lookup(iso string) (corpus.FreqDist, error) {
	dist, err := s.store.Counts(s.cmd.Context(), iso)
	if errors.Is(err, ngramstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q is not in %s", corpus.ErrLanguageNotFound, iso, s.store.Path())
	}
	return dist, err
}

func (s storeSource) codes() []string {
	summaries, err := s.store.Languages(s.cmd.Context())
	if err != nil {
		return nil
	}
	codes := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		codes = append(codes, summary.ISO)
	}
	return codes
}

// resolveFreq looks iso up in src, retrying with the ISO 639-3 form of a
// two-letter code.
func resolveFreq(src freqSource, iso string) (string, corpus.FreqDist, error) {
	dist, err := src.lookup(iso)
	if errors.Is(err, corpus.ErrLanguageNotFound) {
		if alt := language.ToISO3(iso); alt != iso {
			if altDist, altErr := src.lookup(alt); altErr == nil {
				return alt, altDist, nil
			}
		}
		return iso, nil, fmt.Errorf("%w%s", err, suggestionSuffix(iso, src.codes()))
	}
	return iso, dist, err
}

func newFreqCommand(ctx *commandContext) *cobra.Command {
	var top int
	var asJSON bool
	var fromDB bool

	cmd := &cobra.Command{
		Use:   "freq <iso>",
		Short: "Show the most common trigrams of a language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src freqSource
			if fromDB {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				store, err := ngramstore.OpenReadOnly(cfg.Export.DBPath)
				if err != nil {
					return fmt.Errorf("open export store: %w", err)
				}
				defer store.Close()
				src = storeSource{cmd: cmd, store: store}
			} else {
				reader, err := ctx.openReader(cmd)
				if err != nil {
					return err
				}
				src = readerSource{reader: reader}
			}

			iso, dist, err := resolveFreq(src, language.Normalize(args[0]))
			if err != nil {
				return err
			}

			report := freqReport{
				ISO:   iso,
				Name:  language.DisplayName(iso),
				Bins:  dist.B(),
				Total: dist.N(),
			}
			for _, entry := range dist.MostCommon(top) {
				report.Top = append(report.Top, freqRow{
					Ngram: entry.Ngram,
					Count: entry.Count,
					Freq:  dist.Freq(entry.Ngram),
				})
			}

			if asJSON {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s): %d trigrams, %d total\n", report.Name, report.ISO, report.Bins, report.Total)
			rows := make([][]string, 0, len(report.Top))
			for _, row := range report.Top {
				rows = append(rows, []string{
					row.Ngram,
					strconv.Itoa(row.Count),
					strconv.FormatFloat(row.Freq, 'f', 6, 64),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "N-gram", quote: true},
				{header: "Count", right: true},
				{header: "Freq", right: true},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 20, "Number of trigrams to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "Read from the export database instead of the corpus")
	return cmd
}
