package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crubadan/internal/corpus"
	"crubadan/internal/language"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "Translate between ISO 639-3 and Crúbadán codes",
	}

	lookupCmd.AddCommand(&cobra.Command{
		Use:   "iso <code>",
		Short: "Print the Crúbadán code for an ISO 639-3 code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := ctx.openReader(cmd)
			if err != nil {
				return err
			}
			code, ok := reader.ISOToCrubadan(args[0])
			if !ok {
				return fmt.Errorf("%w: %s%s", corpus.ErrLanguageNotFound, args[0], suggestionSuffix(args[0], reader.Langs()))
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	})

	lookupCmd.AddCommand(&cobra.Command{
		Use:   "crubadan <code>",
		Short: "Print the ISO 639-3 code for a Crúbadán code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := ctx.openReader(cmd)
			if err != nil {
				return err
			}
			iso, ok := reader.CrubadanToISO(args[0])
			if !ok {
				return fmt.Errorf("%w: no mapping for crubadan code %s", corpus.ErrLanguageNotFound, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", iso, language.DisplayName(iso))
			return nil
		},
	})

	return lookupCmd
}
