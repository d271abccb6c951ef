package worker

import (
	"context"
	"log/slog"
	"time"
)

// StatementExporter writes the current funding statement to its destination.
type StatementExporter interface {
	Export(ctx context.Context) error
}

// StatementWorker periodically exports the funding statement.
type StatementWorker struct {
	exporter StatementExporter
	interval time.Duration
}

// NewStatementWorker creates a new StatementWorker.
func NewStatementWorker(exporter StatementExporter, interval time.Duration) *StatementWorker {
	return &StatementWorker{
		exporter: exporter,
		interval: interval,
	}
}

// Run starts the export loop. It blocks until the context is cancelled.
func (w *StatementWorker) Run(ctx context.Context) {
	slog.Info("StatementWorker: starting")

	// Export immediately on startup
	if err := w.exporter.Export(ctx); err != nil {
		slog.Error("StatementWorker: initial export failed", "error", err)
	} else {
		slog.Info("StatementWorker: initial export completed")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("StatementWorker: shutting down")
			return
		case <-ticker.C:
			if err := w.exporter.Export(ctx); err != nil {
				slog.Error("StatementWorker: export failed", "error", err)
			} else {
				slog.Info("StatementWorker: export completed")
			}
		}
	}
}
