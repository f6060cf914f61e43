package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/roster/internal/httpapi"
	"github.com/aretw0/roster/internal/platform"
	rosterlifecycle "github.com/aretw0/roster/pkg/adapters/lifecycle"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the console as a JSON HTTP API",
	Long: `Serve exposes the stores under /api. With the fs adapter, writes made by
other processes (e.g. another roster command) are picked up live.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		if !cfg.Server.DisableWatch {
			switch err := c.Follow(ctx); {
			case errors.Is(err, platform.ErrNotWatchable):
				logger.Debug("medium cannot be watched, external writes will not be seen", "adapter", cfg.Storage.Adapter)
			case err != nil:
				return fmt.Errorf("failed to watch medium: %w", err)
			}
		}

		changes := rosterlifecycle.NewSource(c.Subscribe(ctx), rosterlifecycle.WithoutReloads())
		if err := changes.Start(ctx); err != nil {
			return err
		}
		go func() {
			for e := range changes.Events() {
				if change, ok := e.(rosterlifecycle.ChangeEvent); ok {
					logger.Debug("change", "collection", change.Collection, "type", change.Type, "id", change.ID)
				}
			}
		}()

		handler := httpapi.NewHandler(c, httpapi.WithLogger(logger))
		server := &http.Server{
			Addr: cfg.Server.Addr(),
			Handler: httpapi.NewRouter(handler, httpapi.CORSOptions{
				AllowedOrigins: cfg.CORS.Origins(),
				MaxAge:         cfg.CORS.MaxAge,
			}),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting", "addr", "http://"+server.Addr+"/api", "adapter", cfg.Storage.Adapter)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
