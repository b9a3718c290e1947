// Package worker keeps the local store fresh with periodic full syncs.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"quest/config"
	"quest/internal/delivery"
	deliverycontext "quest/internal/delivery/context"
	"quest/internal/domain/lifecycle"
	"quest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type syncWorker struct {
	interval time.Duration
	onStart  bool
	logger   *slog.Logger
	hybridUC usecase.HybridUsecase

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// ServerParams holds dependencies for the sync worker
type ServerParams struct {
	fx.In

	Lc       fx.Lifecycle
	Cfg      *config.Config
	Logger   *slog.Logger
	HybridUC usecase.HybridUsecase
}

// NewServer creates the periodic sync worker. It runs one sync at start when
// sync.onStart is set and then one per sync.interval; a zero interval disables the loop.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	w := newSyncWorker(params.Cfg.Sync, params.Logger, params.HybridUC)

	params.Lc.Append(fx.Hook{
		OnStop: w.stop,
	})

	return w, nil
}

func newSyncWorker(cfg *config.SyncConfig, logger *slog.Logger, hybridUC usecase.HybridUsecase) *syncWorker {
	return &syncWorker{
		interval: cfg.Interval,
		onStart:  cfg.OnStart,
		logger:   logger,
		hybridUC: hybridUC,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Serve blocks until ctx is done or the worker is stopped.
func (w *syncWorker) Serve(ctx context.Context) error {
	defer close(w.done)

	if w.onStart {
		w.runOnce(ctx, "start")
	}

	if w.interval <= 0 {
		w.logger.Info("Periodic sync disabled")

		return nil
	}

	w.logger.Info("Starting sync worker", slog.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.runOnce(ctx, "interval")
		}
	}
}

func (w *syncWorker) runOnce(ctx context.Context, reason string) {
	requestID := uuid.NewString()
	logger := w.logger.With(slog.String("request_id", requestID), slog.String("reason", reason))

	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, logger)

	if result := w.hybridUC.FullSync(ctx); !result.Success {
		logger.Warn("[Worker] Scheduled sync failed", slog.String("error", result.Error))
	}
}

// stop ends the loop and waits for a running sync to finish.
func (w *syncWorker) stop(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.stopCh) })

	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	w.logger.Info("Shutting down sync worker")

	select {
	case <-w.done:
		return nil
	case <-shutdownCtx.Done():
		return errors.Wrap(shutdownCtx.Err(), "sync worker did not stop")
	}
}
