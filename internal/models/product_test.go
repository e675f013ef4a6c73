package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_DecodeBackendPayload(t *testing.T) {
	payload := `{"pid":"P0001","sid":"S0001","name":"Lamp","description":"Desk lamp","image":"http://img/p1.png",
		"category":"Home","price":19.99,"stock":4,"sales":120,"rating":4.7,"clicks":30}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(payload), &p))

	assert.Equal(t, "P0001", p.PID)
	assert.Equal(t, "S0001", p.SID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 120, p.Sales)
	assert.Equal(t, 4.7, p.Rating)
	assert.True(t, p.Available())
}

func TestProduct_Available(t *testing.T) {
	assert.False(t, Product{Price: decimal.Zero}.Available())
	assert.False(t, Product{Price: decimal.NewFromInt(-1)}.Available())
	assert.True(t, Product{Price: decimal.RequireFromString("0.01")}.Available())
}

func TestNewCartItem_SnapshotsProductFields(t *testing.T) {
	p := Product{
		PID: "P0002", SID: "S0009", Name: "Mug", Description: "Blue mug",
		Image: "http://img/mug.png", Price: decimal.RequireFromString("7.50"),
	}

	body, err := json.Marshal(NewCartItem(p))
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"P0002","sellerid":"S0009","name":"Mug","description":"Blue mug",
		"imgurl":"http://img/mug.png","cost":7.5}`, string(body))
}

func TestFormatDwellTimestamp_TruncatesToSeconds(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 987654321, time.FixedZone("EST", -5*3600))

	assert.Equal(t, "2024-03-09T19:05:07Z", FormatDwellTimestamp(ts))
}
