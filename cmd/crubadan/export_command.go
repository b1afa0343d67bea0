package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crubadan/internal/config"
	"crubadan/internal/logging"
	"crubadan/internal/ngramstore"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var dbPath string
	var asJSON bool
	var list bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write loaded distributions to a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := cfg.Export.DBPath
			if override := strings.TrimSpace(dbPath); override != "" {
				target, err = config.ExpandPath(override)
				if err != nil {
					return fmt.Errorf("resolve --db: %w", err)
				}
			}

			if list {
				return listExport(cmd, target, asJSON)
			}

			reader, err := ctx.openReader(cmd)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			logger = logger.With(logging.String(logging.FieldComponent, "export"))

			store, err := ngramstore.Open(target)
			if err != nil {
				return fmt.Errorf("open export store: %w", err)
			}
			defer store.Close()

			started := time.Now()
			run, err := ngramstore.Export(cmd.Context(), store, reader)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			logger.Info("export complete",
				logging.String(logging.FieldEventType, "export_complete"),
				logging.String("run_id", run.ID),
				logging.Int("languages", run.Languages),
				logging.Duration("elapsed", time.Since(started)),
			)

			if asJSON {
				return writeJSON(cmd, run)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d languages to %s\n", run.Languages, store.Path())
			fmt.Fprintf(out, "Run ID: %s\n", run.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (overrides export.db_path)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&list, "list", false, "List the languages in an existing export instead of writing one")
	return cmd
}

type exportListing struct {
	Run       ngramstore.Run               `json:"run"`
	Languages []ngramstore.LanguageSummary `json:"languages"`
}

func listExport(cmd *cobra.Command, path string, asJSON bool) error {
	store, err := ngramstore.OpenReadOnly(path)
	if err != nil {
		return fmt.Errorf("open export store: %w", err)
	}
	defer store.Close()

	run, _, err := store.LatestRun(cmd.Context())
	if err != nil {
		return err
	}
	summaries, err := store.Languages(cmd.Context())
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(cmd, exportListing{Run: run, Languages: summaries})
	}

	out := cmd.OutOrStdout()
	if run.ID != "" {
		fmt.Fprintf(out, "Run %s exported %s from %s\n", run.ID, run.ExportedAt.Local().Format(time.DateTime), run.CorpusRoot)
	}
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{summary.ISO, summary.Crubadan, strconv.Itoa(summary.Bins), strconv.Itoa(summary.Total)})
	}
	fmt.Fprintln(out, renderTable([]column{
		{header: "ISO"},
		{header: "Code"},
		{header: "N-grams", right: true},
		{header: "Total", right: true},
	}, rows))
	return nil
}
