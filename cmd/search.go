package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/dexsearch/internal/catalog"
	"github.com/lehigh-university-libraries/dexsearch/internal/export"
	"github.com/lehigh-university-libraries/dexsearch/internal/search"
	"github.com/lehigh-university-libraries/dexsearch/internal/ui"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	format     string
	exportPath string
	details    bool
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var so searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog and print matching Pokémon",
		Long: `Loads the catalog listing, keeps every name containing the query
(case-insensitive) and fetches the details of all matches concurrently.

If any detail fetch fails the whole search fails and no results are printed.`,
		Example: `  # Print cards for every name containing "chu"
  dexsearch search chu

  # Print full details as YAML
  dexsearch search pika --format yaml

  # Save the result set as Parquet
  dexsearch search saur --export saur.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(so.format)
			if err != nil {
				return err
			}
			if format == export.FormatParquet {
				return fmt.Errorf("parquet output requires --export <file>.parquet")
			}

			query := strings.TrimSpace(strings.Join(args, " "))
			client := opts.cfg.NewClient()
			loc := ui.NewLocalizer(opts.cfg.Lang)

			return runSearch(cmd.Context(), cmd.OutOrStdout(), client, client, loc, opts.cfg.MaxConcurrency, query, format, so)
		},
	}

	cmd.Flags().StringVarP(&so.format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringVarP(&so.exportPath, "export", "o", "", "Also save the result set to a .json, .yaml or .parquet file")
	cmd.Flags().BoolVar(&so.details, "details", false, "Print the detail view of every result (text format)")

	return cmd
}

func runSearch(ctx context.Context, out io.Writer, lister catalog.Lister, fetcher search.Fetcher, loc *ui.Localizer, maxConcurrency int, query string, format export.Format, so searchOptions) error {
	var index *catalog.Index
	if query != "" {
		loader := catalog.NewLoader(lister)
		idx, err := loader.Load(ctx)
		if err != nil {
			ui.NewTerminalError(out, loc).Show(err.Error())
			return fmt.Errorf("%s: %w", loc.T(ui.MsgStartupFail), err)
		}
		index = idx
	}

	outcome := search.NewPipeline(index, fetcher, maxConcurrency).Search(ctx, query)
	status := ui.StatusFor(loc, outcome.Status, len(outcome.Results))

	if so.exportPath != "" && outcome.Status == search.StatusSuccess {
		if err := export.SaveFile(so.exportPath, outcome); err != nil {
			return err
		}
		slog.Info("Exported results", "path", so.exportPath, "results", len(outcome.Results))
	}

	switch format {
	case export.FormatJSON:
		if err := export.WriteJSON(out, export.NewDocument(outcome, time.Now())); err != nil {
			return err
		}
	case export.FormatYAML:
		if err := export.WriteYAML(out, export.NewDocument(outcome, time.Now())); err != nil {
			return err
		}
	default:
		fmt.Fprintln(out, ui.RenderStatus(status))
		switch outcome.Status {
		case search.StatusSuccess:
			fmt.Fprintln(out, ui.RenderGrid(ui.CardsFor(outcome.Results)))
			if so.details {
				detail := ui.NewTerminalDetail(out, loc)
				for _, p := range outcome.Results {
					detail.Show(p)
				}
			}
		case search.StatusError:
			ui.NewTerminalError(out, loc).Show(outcome.ErrorText())
		}
	}

	if outcome.Status == search.StatusError {
		return fmt.Errorf("%s: %w", status.Text, outcome.Err)
	}
	return nil
}
