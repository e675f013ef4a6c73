// Package trending derives the demand badges shown on product cards.
package trending

import (
	"storefront-client/internal/models"

	"github.com/shopspring/decimal"
)

const (
	MinRating      = 4.5
	MinStock       = 1
	MinSales       = 100
	LowStockLimit  = 10
	clickRatioText = "0.2"
)

// ClickRatio is the share of sales a product must reach in clicks to count as trending.
var ClickRatio = decimal.RequireFromString(clickRatioText)

// IsTrending reports the "selling fast" badge:
//
//	rating >= 4.5 AND stock >= 1 AND sales >= 100 AND clicks >= 0.2 * sales
//
// The click threshold is evaluated in decimal so that exact multiples (24 clicks on 120 sales)
// are not lost to binary floating point.
func IsTrending(p models.Product) bool {
	clickThreshold := ClickRatio.Mul(decimal.NewFromInt(int64(p.Sales)))

	return p.Rating >= MinRating &&
		p.Stock >= MinStock &&
		p.Sales >= MinSales &&
		decimal.NewFromInt(int64(p.Clicks)).GreaterThanOrEqual(clickThreshold)
}

// IsLowStock holds iff stock <= 10.
func IsLowStock(p models.Product) bool {
	return p.Stock <= LowStockLimit
}
