package render

import (
	"context"
	"errors"
	"strconv"

	"storefront-client/internal/models"
	"storefront-client/internal/trending"
)

// ErrEmptyPage is returned when a page past the first comes back with no products.
var ErrEmptyPage = errors.New("requested page has no products")

// Interactions is what a rendered item's bindings call into.
type Interactions interface {
	// Activate fires the click-through signal and returns the detail URL to navigate to.
	Activate(ctx context.Context, pid string) string
	HoverEnter(ctx context.Context, pid string)
	HoverLeave(ctx context.Context, pid string)
}

// Bindings are the interaction handlers attached to one display item.
type Bindings struct {
	Activate   func(ctx context.Context) string
	HoverEnter func(ctx context.Context)
	HoverLeave func(ctx context.Context)
}

// DisplayItem is a product annotated for one render pass. It is never persisted.
type DisplayItem struct {
	Product    models.Product `json:"product"`
	IsTrending bool           `json:"isTrending"`
	IsLowStock bool           `json:"isLowStock"`
	PriceLabel string         `json:"priceLabel"`
	Bindings   Bindings       `json:"-"`
}

// Controls is the pagination control state after a render.
type Controls struct {
	Page            int    `json:"page"`
	PageLabel       string `json:"pageLabel"`
	PreviousEnabled bool   `json:"previousEnabled"`
	NextEnabled     bool   `json:"nextEnabled"`
}

// Outcome is the complete result of one render pass. Items always replaces the previous set.
type Outcome struct {
	Items    []DisplayItem `json:"items"`
	Controls Controls      `json:"controls"`
	Empty    bool          `json:"empty"`
}

// Render builds display items for products and derives the pagination controls for currentPage.
// The page label is taken from currentPage as given.
//
// An empty first page is a legitimate "no results" outcome. An empty page past the first
// returns ErrEmptyPage and no items.
func Render(products []models.Product, currentPage int, interactions Interactions) (Outcome, error) {
	if len(products) == 0 && currentPage > 1 {
		return Outcome{}, ErrEmptyPage
	}

	items := make([]DisplayItem, 0, len(products))
	for _, product := range products {
		items = append(items, DisplayItem{
			Product:    product,
			IsTrending: trending.IsTrending(product),
			IsLowStock: trending.IsLowStock(product),
			PriceLabel: PriceLabel(product),
			Bindings:   Bind(product.PID, interactions),
		})
	}

	return Outcome{
		Items:    items,
		Controls: NewControls(currentPage, len(products)),
		Empty:    len(items) == 0,
	}, nil
}

// NewControls enables previous iff page > 1 and next iff the page came back full.
func NewControls(page, count int) Controls {
	return Controls{
		Page:            page,
		PageLabel:       strconv.Itoa(page),
		PreviousEnabled: page > 1,
		NextEnabled:     count == models.PageSize,
	}
}

// Bind attaches the interaction handlers for pid.
func Bind(pid string, interactions Interactions) Bindings {
	if interactions == nil {
		return Bindings{}
	}
	return Bindings{
		Activate: func(ctx context.Context) string {
			return interactions.Activate(ctx, pid)
		},
		HoverEnter: func(ctx context.Context) {
			interactions.HoverEnter(ctx, pid)
		},
		HoverLeave: func(ctx context.Context) {
			interactions.HoverLeave(ctx, pid)
		},
	}
}

// Find returns the displayed item for pid.
func (o Outcome) Find(pid string) (DisplayItem, bool) {
	for _, item := range o.Items {
		if item.Product.PID == pid {
			return item, true
		}
	}
	return DisplayItem{}, false
}
