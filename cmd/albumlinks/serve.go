package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/albumlinks/internal/config"
	"github.com/handiism/albumlinks/internal/database"
	"github.com/handiism/albumlinks/internal/server"
	"github.com/handiism/albumlinks/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the album link API server.

Example:
  albumlinks serve
  albumlinks serve --port 8080
  albumlinks serve --host 127.0.0.1 --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.settings.Server
			if host != "" {
				settings.Host = host
			}
			if port != 0 {
				settings.Port = port
			}
			return runServe(cmd.Context(), a, settings)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "server host (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "server port (overrides config)")

	return cmd
}

func runServe(ctx context.Context, a *app, settings config.ServerSettings) error {
	db, err := database.Initialize(a.settings.Database.Path, a.settings.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	srv := server.NewServer(settings, &server.Dependencies{
		Store:   st,
		DB:      db,
		Logger:  a.logger,
		Version: Version,
	})
	if err := srv.Initialize(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down server")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server forced to shutdown", slog.Any("error", err))
		return err
	}

	a.logger.Info("server stopped")
	return nil
}
