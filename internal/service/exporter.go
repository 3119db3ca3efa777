package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/josh-kwaku/mini-payment/internal/ledger"
	"github.com/josh-kwaku/mini-payment/internal/logging"
)

type snapshotter interface {
	Snapshot(ctx context.Context) (ledger.SnapshotResult, error)
}

// PeriodicExporter triggers a balance export on a fixed interval.
type PeriodicExporter struct {
	ledger   snapshotter
	logger   *slog.Logger
	interval time.Duration
}

func NewPeriodicExporter(source snapshotter, logger *slog.Logger, interval time.Duration) *PeriodicExporter {
	return &PeriodicExporter{
		ledger:   source,
		logger:   logger,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled. A failed export is logged and retried
// on the next tick; the ledger keeps the balances in the meantime.
func (p *PeriodicExporter) Run(ctx context.Context) error {
	p.logger.Info("periodic exporter started", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	ctx = logging.WithLogger(ctx, p.logger)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("periodic exporter stopped")
			return nil
		case <-ticker.C:
			if _, err := p.ledger.Snapshot(ctx); err != nil {
				p.logger.Warn("scheduled export failed", "error", err)
			}
		}
	}
}
