package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	httpadapter "github.com/DonghunLouisLee/transaction-handler/internal/adapter/http"
	"github.com/DonghunLouisLee/transaction-handler/internal/adapter/http/handler"
	"github.com/DonghunLouisLee/transaction-handler/internal/adapter/http/middleware"
	"github.com/DonghunLouisLee/transaction-handler/internal/engine"
	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/config"
	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/metrics"
)

func newServeCmd(cfg *config.Config, log zerolog.Logger, m *metrics.Metrics) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the statement processing HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg, log, m)
		},
	}
}

func runServe(cfg *config.Config, log zerolog.Logger, m *metrics.Metrics) error {
	statementHandler := handler.NewStatementHandler(log, m, engine.NewULIDGenerator(), cfg.HTTPMaxBodyBytes)

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		StatementHandler: statementHandler,
		HealthHandler:    handler.NewHealthHandler(),
		Logging:          middleware.NewLoggingMiddleware(log),
		Metrics:          middleware.NewMetricsMiddleware(m),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")

	return nil
}
