package engagement

import (
	"context"
	"net/http"

	"storefront-client/internal/config"
	"storefront-client/internal/models"
)

// DwellSink receives hover-dwell reports.
type DwellSink interface {
	SendDwell(ctx context.Context, report models.DwellReport) error
}

// EventSink receives a copy of every engagement signal.
type EventSink interface {
	Publish(ctx context.Context, event models.EngagementEvent) error
}

// HTTPDwellSink posts dwell reports to the external analytics endpoint.
type HTTPDwellSink struct {
	endpoint   string
	httpClient *http.Client
}

func NewHTTPDwellSink(cfg *config.Config) *HTTPDwellSink {
	return &HTTPDwellSink{
		endpoint:   cfg.AnalyticsURL,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (s *HTTPDwellSink) SendDwell(ctx context.Context, report models.DwellReport) error {
	return postJSON(ctx, s.httpClient, s.endpoint, report)
}
