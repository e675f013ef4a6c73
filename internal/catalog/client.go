package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefront-client/internal/config"
	"storefront-client/internal/models"
	"storefront-client/pkg/middleware"

	"go.uber.org/zap"
)

var (
	// ErrFetch covers every transport, status and decoding failure of a catalog read.
	ErrFetch = errors.New("catalog fetch failed")
	// ErrNotFound is returned when the detail endpoint has no product for the pid.
	ErrNotFound = errors.New("product not found")
)

// maxBodyBytes bounds how much of a catalog response is read.
const maxBodyBytes = 4 << 20

// Client issues listing, search and detail requests to the product API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a catalog client for cfg.CatalogBaseURL
func NewClient(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.CatalogBaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid catalog base url %q: scheme and host are required", cfg.CatalogBaseURL)
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger,
	}, nil
}

// ListProducts fetches one listing page. The page size is fixed server side.
func (c *Client) ListProducts(ctx context.Context, page int) ([]models.Product, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var products []models.Product
	if _, err := c.getJSON(ctx, "/api/product/view", query, &products); err != nil {
		c.logger.Error("Failed to fetch product page", zap.Int("page", page), zap.Error(err))
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// SearchProducts runs a category/text search. Empty strings mean "all categories" and "no text filter".
func (c *Client) SearchProducts(ctx context.Context, category, query string) ([]models.Product, error) {
	params := url.Values{}
	params.Set("category", category)
	params.Set("search", query)

	var products []models.Product
	if _, err := c.getJSON(ctx, "/api/product", params, &products); err != nil {
		c.logger.Error("Failed to search products",
			zap.String("category", category),
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct fetches a single product. It never returns a partially populated product:
// on any failure the result is nil.
func (c *Client) GetProduct(ctx context.Context, pid string) (*models.Product, error) {
	if pid == "" {
		return nil, ErrNotFound
	}

	var product models.Product
	status, err := c.getJSON(ctx, "/api/product/"+url.PathEscape(pid)+"/data", nil, &product)
	if err != nil {
		c.logger.Error("Failed to fetch product", zap.String("pid", pid), zap.Error(err))
		return nil, err
	}
	if status == http.StatusNoContent || product.PID == "" {
		c.logger.Warn("Product not found", zap.String("pid", pid))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, pid)
	}
	return &product, nil
}

// getJSON performs a GET and decodes the body into dest. A 204 leaves dest untouched.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) (int, error) {
	endpoint := *c.baseURL
	endpoint.Path = c.baseURL.Path + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Cancellation is reported as-is so callers can tell it apart from a failure.
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return resp.StatusCode, fmt.Errorf("%w: unexpected status %d from %s", ErrFetch, resp.StatusCode, path)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode %s: %v", ErrFetch, path, err)
	}
	return resp.StatusCode, nil
}
