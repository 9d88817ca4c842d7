package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ytautomation/api"
	"ytautomation/config"
	"ytautomation/logging"
	"ytautomation/storage"
	"ytautomation/upload"

	"go.uber.org/zap"
)

func main() {
	env := config.Load()

	logger, err := logging.New(env.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uploader, err := upload.FromEnv(ctx, env, logger)
	if err != nil {
		logger.Fatal("Failed to initialize uploader", zap.Error(err))
	}

	archive, err := storage.NewArchiveFromEnv(ctx, env, logger)
	if err != nil {
		logger.Fatal("Failed to initialize archive", zap.Error(err))
	}

	r := api.NewRouter(api.NewServer(uploader, archive, logger))
	srv := &http.Server{
		Addr:              env.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting API server", zap.String("addr", srv.Addr))
		logger.Info("API endpoints available",
			zap.Strings("routes", []string{
				"GET  /",
				"GET  /api/health",
				"POST /api/generate",
				"POST /api/upload",
			}))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
