package participant

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper runs the eviction sweep on a fixed period, independent of any
// request. A failed cycle is logged and the loop keeps ticking.
type Sweeper struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a sweeper that calls service.Sweep every interval.
func NewSweeper(service *Service, interval time.Duration, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{service: service, interval: interval, logger: logger}
}

// Run blocks until ctx is canceled.
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("presence sweeper started", "interval", w.interval)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("presence sweeper stopped")
			return
		case <-ticker.C:
			evicted, err := w.service.Sweep(ctx)
			if err != nil {
				w.logger.Error("sweep cycle failed", "error", err)
				continue
			}
			if len(evicted) > 0 {
				w.logger.Info("evicted stale participants", "count", len(evicted), "names", evicted)
			}
		}
	}
}
