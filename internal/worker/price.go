// Package worker contains the periodic background loops: quote refresh
// for live price feeds and statement export.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// QuoteRefresher re-resolves the live feed quote, repopulating its cache.
type QuoteRefresher interface {
	Refresh(ctx context.Context) error
}

// PriceWorker periodically refreshes the live price feed so conversions
// never wait on a cold cache.
type PriceWorker struct {
	refresher QuoteRefresher
	interval  time.Duration
}

// NewPriceWorker creates a new PriceWorker.
func NewPriceWorker(refresher QuoteRefresher, interval time.Duration) *PriceWorker {
	return &PriceWorker{
		refresher: refresher,
		interval:  interval,
	}
}

// Run starts the refresh loop. It blocks until the context is cancelled.
func (w *PriceWorker) Run(ctx context.Context) {
	slog.Info("PriceWorker: starting")

	// Refresh immediately on startup
	if err := w.refresher.Refresh(ctx); err != nil {
		slog.Error("PriceWorker: initial refresh failed", "error", err)
	} else {
		slog.Info("PriceWorker: initial refresh completed")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("PriceWorker: shutting down")
			return
		case <-ticker.C:
			if err := w.refresher.Refresh(ctx); err != nil {
				slog.Error("PriceWorker: refresh failed", "error", err)
			} else {
				slog.Info("PriceWorker: refresh completed")
			}
		}
	}
}
