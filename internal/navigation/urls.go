package navigation

import (
	"fmt"
	"net/url"
	"strconv"

	"storefront-client/internal/config"
)

// Query parameter names understood by the shell pages.
const (
	ParamPage     = "page"
	ParamCategory = "category"
	ParamQuery    = "query"
	ParamUID      = "uid"
	ParamProduct  = "product"
)

// Pages holds the shell page paths navigation URLs are built against.
type Pages struct {
	Listing string
	Search  string
	Detail  string
	Error   string
}

func PagesFromConfig(cfg *config.Config) Pages {
	return Pages{
		Listing: cfg.ListingPage,
		Search:  cfg.SearchPage,
		Detail:  cfg.DetailPage,
		Error:   cfg.ErrorPage,
	}
}

// ListingURL points at the listing page for page. The uid is carried when known.
func (p Pages) ListingURL(page int, uid string) string {
	values := url.Values{}
	values.Set(ParamPage, strconv.Itoa(page))
	setUID(values, uid)
	return p.Listing + "?" + values.Encode()
}

// SearchURL always carries both category and query so an empty category round-trips as "all".
func (p Pages) SearchURL(category, query, uid string) string {
	values := url.Values{}
	values.Set(ParamCategory, category)
	values.Set(ParamQuery, query)
	setUID(values, uid)
	return p.Search + "?" + values.Encode()
}

func (p Pages) DetailURL(pid, uid string) string {
	values := url.Values{}
	values.Set(ParamProduct, pid)
	setUID(values, uid)
	return p.Detail + "?" + values.Encode()
}

// ErrorURL is the terminal error page. It takes no parameters.
func (p Pages) ErrorURL() string {
	return p.Error
}

func setUID(values url.Values, uid string) {
	if uid != "" {
		values.Set(ParamUID, uid)
	}
}

// ParseURL extracts the navigation request carried by a shell URL.
func ParseURL(raw string) (Request, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return Request{}, fmt.Errorf("invalid navigation url: %w", err)
	}
	return ParseRequest(parsed.Query())
}
