package navigation

import (
	"net/url"
	"testing"

	"storefront-client/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPages() Pages {
	return PagesFromConfig(&config.Config{
		ListingPage: "/index.html",
		SearchPage:  "/product-search.html",
		DetailPage:  "/detailed-view.html",
		ErrorPage:   "/error.html",
	})
}

func TestSearchURL_RoundTrip(t *testing.T) {
	pages := testPages()
	tests := []struct {
		name     string
		category string
		query    string
	}{
		{name: "all categories", category: "", query: "lamp"},
		{name: "all categories empty query", category: "", query: ""},
		{name: "category only", category: "Electronics", query: ""},
		{name: "reserved characters", category: "Home & Garden", query: "a+b c/?&=#%"},
		{name: "unicode", category: "Café", query: "crème brûlée"},
		{name: "surrounding spaces kept", category: " Toys ", query: "  robot  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := pages.SearchURL(tt.category, tt.query, "U1")

			req, err := ParseURL(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.category, req.Category)
			assert.Equal(t, tt.query, req.Query)
			assert.Equal(t, "U1", req.UID)

			parsed, err := url.Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, "/product-search.html", parsed.Path)
			_, hasCategory := parsed.Query()[ParamCategory]
			assert.True(t, hasCategory)
		})
	}
}

func TestListingURL(t *testing.T) {
	pages := testPages()

	assert.Equal(t, "/index.html?page=3&uid=U+1", pages.ListingURL(3, "U 1"))
	assert.Equal(t, "/index.html?page=1", pages.ListingURL(1, ""))

	req, err := ParseURL(pages.ListingURL(4, "abc"))
	require.NoError(t, err)
	assert.Equal(t, 4, req.Page)
	assert.Equal(t, "abc", req.UID)
}

func TestDetailURL(t *testing.T) {
	pages := testPages()

	raw := pages.DetailURL("P/1", "U1")
	assert.Equal(t, "/detailed-view.html?product=P%2F1&uid=U1", raw)

	req, err := ParseURL(raw)
	require.NoError(t, err)
	assert.Equal(t, "P/1", req.ProductID)
	assert.Equal(t, "/error.html", pages.ErrorURL())
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, Request{Page: 1}, req)

	req, err = ParseRequest(url.Values{"page": {"12"}, "uid": {" U1 "}, "product": {"P1"}})
	require.NoError(t, err)
	assert.Equal(t, 12, req.Page)
	assert.Equal(t, "U1", req.UID)
	assert.Equal(t, "P1", req.ProductID)

	for _, raw := range []string{"0", "-1", "abc", "1.5"} {
		_, err := ParseRequest(url.Values{"page": {raw}})
		assert.ErrorIs(t, err, ErrInvalidPage, raw)
	}
}
