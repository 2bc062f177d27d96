package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geezit/geezit-server/internal/api"
	"github.com/geezit/geezit-server/internal/api/handlers"
	"github.com/geezit/geezit-server/internal/api/services"
	"github.com/geezit/geezit-server/internal/auth"
	"github.com/geezit/geezit-server/internal/config"
	"github.com/geezit/geezit-server/internal/logging"
	"github.com/geezit/geezit-server/internal/repositories"
)

// @title GeeziT API
// @version 1.0
// @description Anonymous messages and hearts between users.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.IsProduction(), cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	dialector, err := repositories.Dialector(cfg.DBDriver, cfg.DB_URL)
	if err != nil {
		return err
	}
	db, err := repositories.ConnectDatabase(dialector, log)
	if err != nil {
		return err
	}

	var svcOpts []services.Option
	if cfg.R2.Enabled() {
		r2 := cfg.R2
		svcOpts = append(svcOpts, services.WithExportStore(
			repositories.NewR2Store(r2.AccessKeyID, r2.SecretAccessKey, r2.AccountID, r2.BucketName, r2.Region),
		))
		log.Info("inbox export enabled", "bucket", r2.BucketName)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	svc := services.New(repositories.NewStore(db), tokens, log, svcOpts...)

	var handlerOpts []handlers.Option
	if cfg.Google.Enabled() {
		handlerOpts = append(handlerOpts, handlers.WithGoogle(services.NewGoogleAuth(cfg.Google), cfg.FrontendURL))
		log.Info("google sign-in enabled")
	}

	router := api.SetupRouter(handlers.New(svc, log, handlerOpts...), tokens, cfg.CorsConfig, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting GeeziT server", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen on port %s: %w", cfg.Port, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
