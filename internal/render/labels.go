package render

import (
	"errors"
	"fmt"
	"strings"

	"storefront-client/internal/models"
	"storefront-client/internal/trending"
)

const (
	// AllCategories is the category picker label for the empty category.
	AllCategories    = "All"
	UnavailableLabel = "Unavailable"
	currencyPrefix   = "C$ "
)

// ErrNoProduct is returned when a detail view is requested without a product.
var ErrNoProduct = errors.New("no product to display")

// PriceLabel renders the price with two decimals, or the unavailable sentinel for prices <= 0.
func PriceLabel(p models.Product) string {
	if !p.Available() {
		return UnavailableLabel
	}
	return currencyPrefix + p.Price.StringFixed(2)
}

// CategoryLabel maps the empty category to the picker's "All" label.
func CategoryLabel(category string) string {
	if category == "" {
		return AllCategories
	}
	return category
}

// CategoryFromLabel is the inverse of CategoryLabel.
func CategoryFromLabel(label string) string {
	if label == AllCategories {
		return ""
	}
	return label
}

// SearchStatus is the status line shown above search results.
func SearchStatus(category, query string, count int) string {
	if count == 0 {
		return `No products found for "` + query + `"`
	}

	scope := "all categories"
	if category != "" {
		scope = strings.ToLower(category)
	}

	if query == "" {
		if category == "" {
			return "Showing all results"
		}
		return "Showing all results in " + scope
	}
	return `Showing results for "` + query + `" in ` + scope
}

// DetailView is the fully populated detail page model.
type DetailView struct {
	PID           string  `json:"pid"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	CategoryLabel string  `json:"categoryLabel"`
	Rating        float64 `json:"rating"`
	SalesLabel    string  `json:"salesLabel"`
	PriceLabel    string  `json:"priceLabel"`
	SellerLabel   string  `json:"sellerLabel"`
	StockLabel    string  `json:"stockLabel"`
	Available     bool    `json:"available"`
	IsTrending    bool    `json:"isTrending"`
	IsLowStock    bool    `json:"isLowStock"`
}

// Detail builds the detail view. It never returns a partially populated view.
func Detail(p *models.Product) (*DetailView, error) {
	if p == nil || p.PID == "" {
		return nil, ErrNoProduct
	}

	return &DetailView{
		PID:           p.PID,
		Title:         p.PID + " | " + p.Name,
		Name:          p.Name,
		Description:   p.Description,
		Image:         p.Image,
		Category:      p.Category,
		CategoryLabel: CategoryLabel(p.Category),
		Rating:        p.Rating,
		SalesLabel:    fmt.Sprintf("%d sold", p.Sales),
		PriceLabel:    PriceLabel(*p),
		SellerLabel:   "Seller: " + p.SID,
		StockLabel:    fmt.Sprintf("%d left in stock", p.Stock),
		Available:     p.Available(),
		IsTrending:    trending.IsTrending(*p),
		IsLowStock:    trending.IsLowStock(*p),
	}, nil
}
