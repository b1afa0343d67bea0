package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crubadan/internal/ngramstore"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the corpus installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Corpus", colorize)
			lines = append(lines, renderStatusLine("Root", statusInfo, cfg.Corpus.Root, colorize))

			reader, err := ctx.openReader(cmd)
			if err != nil {
				lines = append(lines, renderStatusLine("Installation", statusError, err.Error(), colorize))
				fmt.Fprintln(out, strings.Join(lines, "\n"))
				return errors.New("corpus check failed")
			}

			mapped := len(reader.Mapping())
			loaded := len(reader.Loaded())
			skipped := reader.Skipped()

			lines = append(lines, renderStatusLine("Mapping", statusOK, fmt.Sprintf("%d entries", mapped), colorize))
			if nonISO := reader.NonISOCodes(); len(nonISO) > 0 {
				lines = append(lines, renderStatusLine("ISO codes", statusWarn,
					fmt.Sprintf("%d not ISO 639-3: %s", len(nonISO), strings.Join(nonISO, ", ")), colorize))
			}

			loadedKind := statusOK
			if loaded == 0 {
				loadedKind = statusWarn
			}
			lines = append(lines, renderStatusLine("Languages", loadedKind, fmt.Sprintf("%d loaded", loaded), colorize))

			if len(skipped) == 0 {
				lines = append(lines, renderStatusLine("Skipped files", statusOK, "none", colorize))
			} else {
				lines = append(lines, renderStatusLine("Skipped files", statusWarn, fmt.Sprintf("%d", len(skipped)), colorize))
				for _, s := range skipped {
					lines = append(lines, fmt.Sprintf("%s  - %s (%s)", statusIndent, s.File, s.Reason))
				}
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Export", colorize)...)
			lines = append(lines, exportStatusLine(cmd, cfg.Export.DBPath, colorize))

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func exportStatusLine(cmd *cobra.Command, dbPath string, colorize bool) string {
	store, err := ngramstore.OpenReadOnly(dbPath)
	if errors.Is(err, ngramstore.ErrNotFound) {
		return renderStatusLine("Last export", statusInfo, "never ("+dbPath+")", colorize)
	}
	if err != nil {
		return renderStatusLine("Last export", statusError, err.Error(), colorize)
	}
	defer store.Close()

	run, ok, err := store.LatestRun(cmd.Context())
	switch {
	case err != nil:
		return renderStatusLine("Last export", statusError, err.Error(), colorize)
	case !ok:
		return renderStatusLine("Last export", statusInfo, "never ("+dbPath+")", colorize)
	default:
		return renderStatusLine("Last export", statusOK,
			fmt.Sprintf("%d languages at %s", run.Languages, run.ExportedAt.Local().Format(time.DateTime)), colorize)
	}
}
