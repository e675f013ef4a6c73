package engagement

import (
	"context"
	"time"

	"storefront-client/internal/clock"
	"storefront-client/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sinks groups the upstreams the reporter writes to. Events is optional.
type Sinks struct {
	Backend Backend
	Dwell   DwellSink
	Events  EventSink
}

// Reporter emits engagement signals as detached tasks. None of its methods wait for the
// upstream call: they return as soon as the task is queued (or dropped).
type Reporter struct {
	executor *Executor
	sinks    Sinks
	clock    clock.Clock
	userID   string
	logger   *zap.Logger
}

// NewReporter creates a reporter. userID is the static user id stamped on dwell reports.
func NewReporter(executor *Executor, sinks Sinks, clk clock.Clock, userID string, logger *zap.Logger) *Reporter {
	return &Reporter{
		executor: executor,
		sinks:    sinks,
		clock:    clk,
		userID:   userID,
		logger:   logger,
	}
}

// IncrementClicks bumps the product's click counter ahead of detail navigation.
func (r *Reporter) IncrementClicks(pid string) bool {
	accepted := r.executor.Submit("increment-clicks", func(ctx context.Context) error {
		return r.sinks.Backend.IncrementClicks(ctx, pid)
	})
	r.publish(models.EventClick, pid, "", nil)
	return accepted
}

// ReportHoverDwell submits one dwell measurement for pid.
func (r *Reporter) ReportHoverDwell(pid string, duration time.Duration) bool {
	report := models.DwellReport{
		ID:         uuid.New().String(),
		UserID:     r.userID,
		ProductID:  pid,
		DurationMs: duration.Milliseconds(),
		Timestamp:  models.FormatDwellTimestamp(r.clock.Now()),
	}

	accepted := r.executor.Submit("hover-dwell", func(ctx context.Context) error {
		return r.sinks.Dwell.SendDwell(ctx, report)
	})
	r.mirror(models.EngagementEvent{
		EventType:  models.EventHoverDwell,
		EventID:    report.ID,
		ProductID:  report.ProductID,
		UserID:     report.UserID,
		OccurredAt: report.Timestamp,
		Data:       report,
	})
	return accepted
}

// AddToCart submits a snapshot of product to the uid's cart.
func (r *Reporter) AddToCart(product models.Product, uid string) bool {
	item := models.NewCartItem(product)
	accepted := r.executor.Submit("add-to-cart", func(ctx context.Context) error {
		return r.sinks.Backend.AddToCart(ctx, uid, item)
	})
	r.publish(models.EventAddToCart, product.PID, uid, item)
	return accepted
}

// AddToWishlist submits a snapshot of product to the uid's wishlist.
func (r *Reporter) AddToWishlist(product models.Product, uid string) bool {
	item := models.NewCartItem(product)
	accepted := r.executor.Submit("add-to-wishlist", func(ctx context.Context) error {
		return r.sinks.Backend.AddToWishlist(ctx, uid, item)
	})
	r.publish(models.EventAddToWishlist, product.PID, uid, item)
	return accepted
}

func (r *Reporter) publish(eventType, pid, uid string, data interface{}) {
	r.mirror(models.EngagementEvent{
		EventType:  eventType,
		EventID:    uuid.New().String(),
		ProductID:  pid,
		UserID:     uid,
		OccurredAt: r.clock.Now().UTC().Format(time.RFC3339),
		Data:       data,
	})
}

// mirror copies a signal to the event sink, if one is configured.
func (r *Reporter) mirror(event models.EngagementEvent) {
	if r.sinks.Events == nil {
		return
	}
	r.executor.Submit("publish-"+event.EventType, func(ctx context.Context) error {
		return r.sinks.Events.Publish(ctx, event)
	})
}
