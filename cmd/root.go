package cmd

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/dexsearch/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootOptions struct {
	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "dexsearch",
		Short: "Search and browse the Pokémon catalog",
		Long: `Dexsearch loads the list of every Pokémon from PokeAPI, filters it by
case-insensitive substring match and fetches the details of every match.

Results can be browsed in a web interface or printed in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg, err := config.Load(viper.New(), cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			slog.SetDefault(logger)

			opts.cfg = cfg
			return nil
		},
	}

	config.AddFlags(cmd.PersistentFlags())

	// Add subcommands
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newShowCmd(opts))

	return cmd
}
