package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Itish41/ActionScribe/initializers"
	"github.com/Itish41/ActionScribe/router"
	service "github.com/Itish41/ActionScribe/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var envFile, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Load the environment, connect to the database, apply migrations and
serve the notes, action items, search and stats endpoints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initializers.LoadEnv(zap.NewNop(), envFile); err != nil {
				return err
			}
			cfg := initializers.LoadConfig()
			if port != "" {
				cfg.Port = port
			}

			logger, err := initializers.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg initializers.Config, logger *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	if err := initializers.ConnectDB(cfg, logger); err != nil {
		return fmt.Errorf("failed to initialize database connection: %w", err)
	}
	if err := initializers.Migrate(cfg, logger); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	index, err := service.NewNoteIndex(cfg.ElasticsearchURL, logger)
	if err != nil {
		logger.Warn("Search index unavailable, using the database only", zap.Error(err))
		index = nil
	}
	archive, err := service.NewArchive(cfg.S3, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize note archive: %w", err)
	}

	engine := router.New(router.NewServices(initializers.DB, index, archive, logger), logger, router.Options{})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
