package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/dsfusion/internal/api"
	"github.com/Harshitk-cp/dsfusion/internal/buildconfig"
	"github.com/Harshitk-cp/dsfusion/internal/config"
	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/Harshitk-cp/dsfusion/internal/service"
	"github.com/Harshitk-cp/dsfusion/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evidence, err := config.LoadEvidence(config.EvidenceConfigPath())
	if err != nil {
		logger.Fatal("failed to load evidence config", zap.Error(err))
	}
	source, err := service.NewEvidenceSource(evidence, logger)
	if err != nil {
		logger.Fatal("invalid evidence config", zap.Error(err))
	}

	var (
		samples domain.SampleStore
		pinger  api.Pinger
	)
	if dbURL := config.DatabaseURL(); dbURL != "" {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		logger.Info("connected to database")

		sampleStore := store.NewSampleStore(pool)
		if err := sampleStore.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to prepare schema", zap.Error(err))
		}
		samples, pinger = sampleStore, pool
	} else {
		fileStore, err := store.LoadFile(config.DataFile(), store.FileOptions{
			HasHeader:   config.DataHasHeader(),
			LabelColumn: config.DataLabelColumn(),
		})
		if err != nil {
			logger.Fatal("failed to load sample file", zap.String("path", config.DataFile()), zap.Error(err))
		}
		logger.Info("loaded sample file", zap.String("path", fileStore.Path()))
		samples = fileStore
	}

	app := api.NewApp(ctx, samples, source, pinger, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("version", buildconfig.String()),
			zap.Int("dimensions", len(evidence.Dimensions)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
