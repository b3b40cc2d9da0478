// Package worker runs the background reconciliation loop that retries
// pairing for allocation requests the live submission path failed to
// match.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/hostel-room-allocation/internal/allocation"
	"github.com/iliyamo/hostel-room-allocation/internal/config"
)

// reconcileService is the slice of the allocation service the worker
// needs; tests substitute a stub.
type reconcileService interface {
	ReconcileStale(ctx context.Context, staleAfter time.Duration, batch int) (allocation.ReconcileStats, error)
}

// Reconciler periodically sweeps stale pending requests and retries
// auto-pairing for them.  Multiple instances may run concurrently
// (horizontally scaled deployments have no leader election); the
// sweep is safe because every pair is re-validated inside its commit
// transaction, merely wasteful.
type Reconciler struct {
	svc reconcileService
	log *zap.Logger
	cfg config.WorkerConfig
}

// New returns a Reconciler.  A nil logger falls back to a no-op
// logger.
func New(svc reconcileService, log *zap.Logger, cfg config.WorkerConfig) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{svc: svc, log: log, cfg: cfg}
}

// Run executes the reconciliation loop until ctx is cancelled.  Each
// tick processes one batch; a failed cycle is logged and the loop
// keeps going.  When the worker is disabled by configuration, Run
// logs once and returns immediately.
func (r *Reconciler) Run(ctx context.Context) {
	if r.cfg.Disabled {
		r.log.Info("reconciler disabled")
		return
	}
	r.log.Info("reconciler started",
		zap.Duration("interval", r.cfg.Interval),
		zap.Duration("stale_after", r.cfg.StaleAfter),
		zap.Int("batch", r.cfg.BatchLimit))
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info("reconciler stopped")
			return
		case <-ticker.C:
			stats, err := r.svc.ReconcileStale(ctx, r.cfg.StaleAfter, r.cfg.BatchLimit)
			if err != nil {
				r.log.Error("reconciler cycle failed", zap.Error(err))
				continue
			}
			if stats.Processed > 0 {
				r.log.Info("reconciler cycle",
					zap.Int("processed", stats.Processed),
					zap.Int("paired", stats.Paired))
			}
		}
	}
}
