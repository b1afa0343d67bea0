package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"crubadan/internal/language"
)

type langRow struct {
	ISO      string `json:"iso"`
	Crubadan string `json:"crubadan"`
	Name     string `json:"name"`
	Loaded   bool   `json:"loaded"`
	Bins     int    `json:"bins"`
}

func newLangsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "langs",
		Short: "List languages in the corpus mapping table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := ctx.openReader(cmd)
			if err != nil {
				return err
			}

			loaded := reader.Loaded()
			entries := reader.Mapping()
			rows := make([]langRow, 0, len(entries))
			for _, entry := range entries {
				row := langRow{
					ISO:      entry.ISO,
					Crubadan: entry.Crubadan,
					Name:     language.DisplayName(entry.ISO),
				}
				if _, found := slices.BinarySearch(loaded, entry.ISO); found {
					row.Loaded = true
					if dist, err := reader.LangFreq(entry.ISO); err == nil {
						row.Bins = dist.B()
					}
				}
				rows = append(rows, row)
			}

			if asJSON {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No languages in mapping table")
				return nil
			}
			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				table = append(table, []string{row.ISO, row.Crubadan, row.Name, yesNo(row.Loaded), strconv.Itoa(row.Bins)})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "ISO"},
				{header: "Code"},
				{header: "Name"},
				{header: "Loaded"},
				{header: "N-grams", right: true},
			}, table))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
