// Command lightbnb serves the LightBnB API.
//
// It loads configuration from LIGHTBNB_* variables, applies pending
// migrations, starts the HTTP server and the email worker, and shuts
// both down on SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stevenls811118/LightBnB/internal/config"
	"github.com/stevenls811118/LightBnB/internal/database"
	"github.com/stevenls811118/LightBnB/internal/handler"
	"github.com/stevenls811118/LightBnB/internal/logger"
	"github.com/stevenls811118/LightBnB/internal/middleware"
	"github.com/stevenls811118/LightBnB/internal/repository"
	"github.com/stevenls811118/LightBnB/internal/router"
	"github.com/stevenls811118/LightBnB/internal/server"
	"github.com/stevenls811118/LightBnB/internal/service"
)

const (
	migrationTimeout = time.Minute
	shutdownTimeout  = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	err = run(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("lightbnb stopped with error")
	}

	// os.Exit skips deferred calls, so flush New Relic explicitly.
	loggerService.Shutdown()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
	migrateCtx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	err := database.Migrate(migrateCtx, log, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers, middleware.NewMiddlewares(srv))

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			_ = srv.Shutdown(context.Background())
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}
