package trending

import (
	"testing"

	"storefront-client/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsTrending(t *testing.T) {
	testCases := []struct {
		name     string
		product  models.Product
		expected bool
	}{
		{"clicks above threshold", models.Product{Rating: 4.7, Stock: 5, Sales: 120, Clicks: 30}, true},
		{"clicks below threshold", models.Product{Rating: 4.7, Stock: 5, Sales: 120, Clicks: 20}, false},
		{"clicks exactly at threshold", models.Product{Rating: 4.5, Stock: 1, Sales: 120, Clicks: 24}, true},
		{"clicks one below threshold", models.Product{Rating: 4.5, Stock: 1, Sales: 120, Clicks: 23}, false},
		{"odd sales threshold", models.Product{Rating: 5, Stock: 3, Sales: 101, Clicks: 21}, true},
		{"odd sales below threshold", models.Product{Rating: 5, Stock: 3, Sales: 101, Clicks: 20}, false},
		{"rating just below", models.Product{Rating: 4.49, Stock: 5, Sales: 500, Clicks: 500}, false},
		{"out of stock", models.Product{Rating: 4.9, Stock: 0, Sales: 500, Clicks: 500}, false},
		{"sales below minimum", models.Product{Rating: 4.9, Stock: 5, Sales: 99, Clicks: 99}, false},
		{"zero sales never trends", models.Product{Rating: 5, Stock: 5, Sales: 0, Clicks: 0}, false},
		{"minimum sales", models.Product{Rating: 4.5, Stock: 1, Sales: 100, Clicks: 20}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsTrending(tc.product))
		})
	}
}

func TestIsTrending_ExhaustiveThresholdBoundary(t *testing.T) {
	for sales := MinSales; sales <= 5000; sales += 5 {
		exact := sales / 5
		assert.True(t, IsTrending(models.Product{Rating: 4.5, Stock: 1, Sales: sales, Clicks: exact}), "sales=%d", sales)
		assert.False(t, IsTrending(models.Product{Rating: 4.5, Stock: 1, Sales: sales, Clicks: exact - 1}), "sales=%d", sales)
	}
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, IsLowStock(models.Product{Stock: 0}))
	assert.True(t, IsLowStock(models.Product{Stock: 10}))
	assert.False(t, IsLowStock(models.Product{Stock: 11}))
}
