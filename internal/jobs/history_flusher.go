// Package jobs runs background maintenance for the service.
package jobs

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// flushTimeout bounds the final write on shutdown.
const flushTimeout = 5 * time.Second

// HistoryMaintainer is the part of the history store the flusher drives.
type HistoryMaintainer interface {
	MaybeCleanupAndPersist(ctx context.Context)
	Flush(ctx context.Context) error
}

// HistoryFlusher periodically trims and persists the search history so the
// table stays bounded even when no lookups arrive.
type HistoryFlusher struct {
	store    HistoryMaintainer
	interval time.Duration
	log      *log.Logger
}

// NewHistoryFlusher creates a new history flusher.
func NewHistoryFlusher(store HistoryMaintainer, interval time.Duration, logger *log.Logger) *HistoryFlusher {
	return &HistoryFlusher{store: store, interval: interval, log: logger}
}

// Start runs the flush loop until ctx is cancelled, then flushes once more.
func (h *HistoryFlusher) Start(ctx context.Context) {
	h.log.Info("History flusher started", "interval", h.interval)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.flush(context.WithoutCancel(ctx))
			h.log.Info("History flusher stopped")
			return
		case <-ticker.C:
			h.store.MaybeCleanupAndPersist(ctx)
		}
	}
}

func (h *HistoryFlusher) flush(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := h.store.Flush(ctx); err != nil {
		h.log.Error("Final history flush failed", "err", err)
	}
}
