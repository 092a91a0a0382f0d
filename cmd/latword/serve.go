package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	latwordhttp "github.com/aretw0/latword/pkg/adapters/http"
	"github.com/aretw0/latword/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP expansion server",
	Long: `Exposes POST /expand, GET /health, GET /info and GET /metrics over HTTP.
Every request is expanded with its own symbol table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}
		logger := cfg.Logger()
		port, _ := cmd.Flags().GetString("port")
		maxBody, _ := cmd.Flags().GetInt64("max-body")

		metrics := observability.NewMetrics()
		srv := &http.Server{
			Addr: ":" + port,
			Handler: latwordhttp.NewHandler(
				latwordhttp.WithMetrics(metrics),
				latwordhttp.WithLogger(logger),
				latwordhttp.WithMaxBody(maxBody),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting latword server", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case <-ctx.Done():
			logger.Info("start shutdown")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			logger.Info("latword server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Int64("max-body", latwordhttp.DefaultMaxBody, "Maximum request body size in bytes")
}
