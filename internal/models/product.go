package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PageSize is the fixed number of products the catalog returns per listing page.
const PageSize = 16

// Product is the catalog record as served by the product API. It is read-only to the client.
type Product struct {
	PID         string          `json:"pid"`
	SID         string          `json:"sid"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Sales       int             `json:"sales"`
	Rating      float64         `json:"rating"`
	Clicks      int             `json:"clicks"`
}

// Available reports whether the product has a real price. Zero or negative prices mean unavailable.
func (p Product) Available() bool {
	return p.Price.IsPositive()
}

// CartItem is the snapshot submitted to the cart and wishlist services. Cost is a plain
// JSON number because the cart service decodes it as a float.
type CartItem struct {
	ID          string  `json:"id"`
	SellerID    string  `json:"sellerid"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imgurl"`
	Cost        float64 `json:"cost"`
}

// NewCartItem snapshots the fields of the currently displayed product.
func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:          p.PID,
		SellerID:    p.SID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.Image,
		Cost:        p.Price.InexactFloat64(),
	}
}

// DwellReport is a single hover-dwell measurement sent to the analytics endpoint.
type DwellReport struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	ProductID  string `json:"product_id"`
	DurationMs int64  `json:"duration_ms"`
	Timestamp  string `json:"timestamp"`
}

// DwellTimestampLayout is ISO-8601 truncated to whole seconds.
const DwellTimestampLayout = "2006-01-02T15:04:05Z07:00"

// FormatDwellTimestamp renders t in UTC without sub-second precision.
func FormatDwellTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(DwellTimestampLayout)
}

// Engagement event kinds published to the event sink.
const (
	EventClick         = "ProductClicked"
	EventHoverDwell    = "ProductHoverDwell"
	EventAddToCart     = "ProductAddedToCart"
	EventAddToWishlist = "ProductAddedToWishlist"
)

// EngagementEvent is the envelope published for every engagement signal.
type EngagementEvent struct {
	EventType  string      `json:"eventType"`
	EventID    string      `json:"eventId"`
	ProductID  string      `json:"productId"`
	UserID     string      `json:"userId,omitempty"`
	OccurredAt string      `json:"occurredAt"`
	Data       interface{} `json:"data,omitempty"`
}
