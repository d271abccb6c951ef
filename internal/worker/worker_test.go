package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockRefresher struct {
	callCount atomic.Int32
	err       error
}

func (m *mockRefresher) Refresh(_ context.Context) error {
	m.callCount.Add(1)
	return m.err
}

func TestPriceWorkerRunsAndShutdown(t *testing.T) {
	mock := &mockRefresher{}
	w := NewPriceWorker(mock, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	// Should have run at least the initial refresh + some ticks
	if got := mock.callCount.Load(); got < 1 {
		t.Errorf("call count = %d, want >= 1", got)
	}
}

func TestPriceWorkerKeepsRunningOnError(t *testing.T) {
	mock := &mockRefresher{err: errors.New("quote API down")}
	w := NewPriceWorker(mock, 30*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	if got := mock.callCount.Load(); got < 2 {
		t.Errorf("call count = %d, want >= 2 (errors must not stop the loop)", got)
	}
}

type mockExporter struct {
	callCount atomic.Int32
}

func (m *mockExporter) Export(_ context.Context) error {
	m.callCount.Add(1)
	return nil
}

func TestStatementWorkerRunsAndShutdown(t *testing.T) {
	mock := &mockExporter{}
	w := NewStatementWorker(mock, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	if got := mock.callCount.Load(); got < 1 {
		t.Errorf("call count = %d, want >= 1", got)
	}
}
