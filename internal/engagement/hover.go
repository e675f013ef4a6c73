package engagement

import (
	"context"
	"time"

	"storefront-client/internal/clock"

	"go.uber.org/zap"
)

// HoverStore keeps hover-enter timestamps per session and product.
type HoverStore interface {
	StartHover(ctx context.Context, id, pid string, at time.Time) error
	EndHover(ctx context.Context, id, pid string) (time.Time, bool, error)
}

// DwellReporter is the part of Reporter the hover tracker needs.
type DwellReporter interface {
	ReportHoverDwell(pid string, duration time.Duration) bool
}

// HoverTracker measures wall-clock dwell between hover-enter and hover-leave on a product card.
type HoverTracker struct {
	store    HoverStore
	reporter DwellReporter
	clock    clock.Clock
	logger   *zap.Logger
}

func NewHoverTracker(store HoverStore, reporter DwellReporter, clk clock.Clock, logger *zap.Logger) *HoverTracker {
	return &HoverTracker{
		store:    store,
		reporter: reporter,
		clock:    clk,
		logger:   logger,
	}
}

// Enter records the hover start. A repeated enter without a leave restarts the measurement.
func (h *HoverTracker) Enter(ctx context.Context, sessionID, pid string) {
	if err := h.store.StartHover(ctx, sessionID, pid, h.clock.Now()); err != nil {
		h.logger.Warn("Failed to record hover start",
			zap.String("session_id", sessionID),
			zap.String("pid", pid),
			zap.Error(err),
		)
	}
}

// Leave submits a dwell report of now - start. When no start was recorded nothing is
// submitted and ok is false.
func (h *HoverTracker) Leave(ctx context.Context, sessionID, pid string) (time.Duration, bool) {
	start, ok, err := h.store.EndHover(ctx, sessionID, pid)
	if err != nil {
		h.logger.Warn("Failed to read hover start",
			zap.String("session_id", sessionID),
			zap.String("pid", pid),
			zap.Error(err),
		)
		return 0, false
	}
	if !ok {
		h.logger.Debug("Hover leave without enter, skipping dwell report",
			zap.String("session_id", sessionID),
			zap.String("pid", pid),
		)
		return 0, false
	}

	duration := h.clock.Now().Sub(start)
	if duration < 0 {
		duration = 0
	}
	h.reporter.ReportHoverDwell(pid, duration)
	return duration, true
}
