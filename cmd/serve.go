package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/dexsearch/internal/catalog"
	"github.com/lehigh-university-libraries/dexsearch/internal/handlers"
	"github.com/lehigh-university-libraries/dexsearch/internal/ui"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the catalog browser",
		Long: `Starts the Dexsearch web interface on the specified port.

The catalog listing is fetched once at startup; the search box appears as soon
as it is loaded. Each search fetches the details of every matching Pokémon.`,
		Example: `  # Start server on default port 8888
  dexsearch serve

  # Start server on custom port with the Polish interface
  dexsearch serve --port 3000 --lang pl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			client := cfg.NewClient()

			loader := catalog.NewLoader(client)
			loader.Start(cmd.Context())

			handler := handlers.New(handlers.Options{
				Loader:         loader,
				Fetcher:        client,
				Localizer:      ui.NewLocalizer(cfg.Lang),
				MaxConcurrency: cfg.MaxConcurrency,
				SessionTTL:     cfg.SessionTTL,
				BaseContext:    cmd.Context(),
			})

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Dexsearch interface available", "addr", addr, "url", "http://localhost"+addr, "api", cfg.APIURL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
