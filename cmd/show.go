package cmd

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/dexsearch/internal/export"
	"github.com/lehigh-university-libraries/dexsearch/internal/ui"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the detail view of one Pokémon",
		Args:  cobra.ExactArgs(1),
		Example: `  dexsearch show pikachu
  dexsearch show pikachu --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			name := strings.ToLower(strings.TrimSpace(args[0]))
			loc := ui.NewLocalizer(opts.cfg.Lang)
			out := cmd.OutOrStdout()

			pokemon, err := opts.cfg.NewClient().FetchPokemon(cmd.Context(), name)
			if err != nil {
				ui.NewTerminalError(out, loc).Show(err.Error())
				return err
			}

			switch f {
			case export.FormatJSON:
				return export.WriteJSON(out, pokemon)
			case export.FormatYAML:
				return export.WriteYAML(out, pokemon)
			case export.FormatText:
				ui.NewTerminalDetail(out, loc).Show(pokemon)
				return nil
			default:
				return fmt.Errorf("unsupported format for show: %s", f)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")

	return cmd
}
