package navigation

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"storefront-client/internal/render"
)

var (
	ErrMissingUID     = errors.New("missing uid")
	ErrMissingProduct = errors.New("missing product id")
	ErrInvalidPage    = errors.New("page must be a positive integer")
	// ErrPageOutOfRange is returned when a page past the first has no products.
	ErrPageOutOfRange = render.ErrEmptyPage
	// ErrSuperseded is returned for a fetch that a newer one in the same session replaced.
	ErrSuperseded = errors.New("superseded by a newer request")
	// ErrUnknownItem is returned for interactions on products not in the current render.
	ErrUnknownItem = errors.New("item is not displayed in the current view")
)

// Request is the page request carried in a shell URL's query string.
type Request struct {
	Page      int
	Category  string
	Query     string
	UID       string
	ProductID string
}

// ParseRequest reads page (default 1), category, query, uid and product. Only the page is
// validated here; which parameters are required depends on the view being entered.
func ParseRequest(values url.Values) (Request, error) {
	req := Request{
		Page:      1,
		Category:  values.Get(ParamCategory),
		Query:     values.Get(ParamQuery),
		UID:       strings.TrimSpace(values.Get(ParamUID)),
		ProductID: strings.TrimSpace(values.Get(ParamProduct)),
	}

	if raw := strings.TrimSpace(values.Get(ParamPage)); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return req, ErrInvalidPage
		}
		req.Page = page
	}

	return req, nil
}
