package engagement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront-client/internal/config"
	"storefront-client/internal/models"
)

// Backend is the write side of the storefront's upstream services.
type Backend interface {
	IncrementClicks(ctx context.Context, pid string) error
	AddToCart(ctx context.Context, uid string, item models.CartItem) error
	AddToWishlist(ctx context.Context, uid string, item models.CartItem) error
}

// HTTPBackend talks to the analytics click counter and the identity-aware cart/wishlist routes.
type HTTPBackend struct {
	catalogBaseURL  string
	identityBaseURL string
	httpClient      *http.Client
}

func NewHTTPBackend(cfg *config.Config) *HTTPBackend {
	return &HTTPBackend{
		catalogBaseURL:  strings.TrimRight(cfg.CatalogBaseURL, "/"),
		identityBaseURL: strings.TrimRight(cfg.IdentityBaseURL, "/"),
		httpClient:      &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (b *HTTPBackend) IncrementClicks(ctx context.Context, pid string) error {
	endpoint := b.catalogBaseURL + "/api/analytics/" + url.PathEscape(pid) + "/clicks/increment"
	return b.post(ctx, endpoint, nil)
}

func (b *HTTPBackend) AddToCart(ctx context.Context, uid string, item models.CartItem) error {
	return b.post(ctx, b.identityBaseURL+"/api/frontend/addtocart/"+url.PathEscape(uid), item)
}

func (b *HTTPBackend) AddToWishlist(ctx context.Context, uid string, item models.CartItem) error {
	return b.post(ctx, b.identityBaseURL+"/api/frontend/addtowishlist/"+url.PathEscape(uid), item)
}

func (b *HTTPBackend) post(ctx context.Context, endpoint string, body interface{}) error {
	return postJSON(ctx, b.httpClient, endpoint, body)
}

// postJSON sends body as JSON (or no body when nil) and treats any non-2xx status as an error.
func postJSON(ctx context.Context, client *http.Client, endpoint string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s: unexpected status %d", endpoint, resp.StatusCode)
	}
	return nil
}
