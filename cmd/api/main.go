package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/josh-kwaku/mini-payment/internal/config"
	"github.com/josh-kwaku/mini-payment/internal/handler"
	"github.com/josh-kwaku/mini-payment/internal/ledger"
	"github.com/josh-kwaku/mini-payment/internal/logging"
	"github.com/josh-kwaku/mini-payment/internal/repository"
	"github.com/josh-kwaku/mini-payment/internal/server"
	"github.com/josh-kwaku/mini-payment/internal/service"
)

const (
	shutdownTimeout       = 30 * time.Second
	idempotencySweepEvery = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init("mini-payment", cfg.LogLevel, cfg.Environment)

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		logger.Error("failed to create export directory", "dir", cfg.Export.Dir, "error", err)
		os.Exit(1)
	}

	store := ledger.NewStore(
		ledger.WithExportDir(cfg.Export.Dir),
		ledger.WithFilenameFormat(ledger.FilenameFormat(cfg.Export.FilenameFormat)),
	)
	svc := service.NewLedgerService(store)
	idempotency := repository.NewIdempotencyRepository()

	router := server.NewRouter(server.RouterConfig{
		Clients:        handler.NewClientHandler(svc),
		Health:         handler.NewHealthHandler(store, cfg.Export.Dir),
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Idempotency.TTL,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server started", "addr", srv.Addr, "export_dir", cfg.Export.Dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Export.Interval > 0 {
		exporter := service.NewPeriodicExporter(svc, logger, cfg.Export.Interval)
		g.Go(func() error { return exporter.Run(gctx) })
	}

	g.Go(func() error {
		return idempotency.RunJanitor(gctx, logger, idempotencySweepEvery)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
