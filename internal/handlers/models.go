package handlers

import (
	"storefront-client/internal/navigation"
	"storefront-client/internal/render"
)

// ErrorResponse represents an error response
// @Description Error response in the StandardError shape
type ErrorResponse struct {
	// Error code
	Error string `json:"error" example:"Superseded"`

	// Human-readable message
	Message string `json:"message" example:"a newer request replaced this one"`

	// Additional details
	Details string `json:"details" example:"Generation: 7"`
}

// ItemResponse is one product card
// @Description Display item: product fields plus derived badges
type ItemResponse struct {
	PID         string  `json:"pid" example:"P1001"`
	SID         string  `json:"sid" example:"S17"`
	Name        string  `json:"name" example:"Desk Lamp"`
	Description string  `json:"description" example:"Adjustable LED desk lamp"`
	Image       string  `json:"image" example:"https://cdn.example.com/p1001.png"`
	Category    string  `json:"category" example:"Home"`
	Price       string  `json:"price" example:"24.5"`
	PriceLabel  string  `json:"priceLabel" example:"C$ 24.50"`
	Rating      float64 `json:"rating" example:"4.7"`
	Sales       int     `json:"sales" example:"120"`
	Stock       int     `json:"stock" example:"5"`
	Clicks      int     `json:"clicks" example:"30"`
	IsTrending  bool    `json:"isTrending" example:"true"`
	IsLowStock  bool    `json:"isLowStock" example:"true"`
}

// ControlsResponse is the pagination control state
// @Description Pagination controls after the render
type ControlsResponse struct {
	Page            int    `json:"page" example:"2"`
	PageLabel       string `json:"pageLabel" example:"2"`
	PreviousEnabled bool   `json:"previousEnabled" example:"true"`
	NextEnabled     bool   `json:"nextEnabled" example:"false"`
}

// ListingResponse represents the listing view
// @Description Render outcome of one listing page
type ListingResponse struct {
	View          string           `json:"view" example:"listing"`
	Generation    uint64           `json:"generation" example:"3"`
	ViewToken     string           `json:"viewToken" example:"eyJhbGciOiJIUzI1NiJ9..."`
	UID           string           `json:"uid,omitempty" example:"u-42"`
	CategoryLabel string           `json:"categoryLabel" example:"All"`
	Items         []ItemResponse   `json:"items"`
	Controls      ControlsResponse `json:"controls"`
	Empty         bool             `json:"empty" example:"false"`
}

// SearchResponse represents the search results view
// @Description Render outcome of a search
type SearchResponse struct {
	View          string         `json:"view" example:"search"`
	Generation    uint64         `json:"generation" example:"4"`
	ViewToken     string         `json:"viewToken" example:"eyJhbGciOiJIUzI1NiJ9..."`
	UID           string         `json:"uid,omitempty" example:"u-42"`
	Category      string         `json:"category" example:"Home"`
	CategoryLabel string         `json:"categoryLabel" example:"Home"`
	Query         string         `json:"query" example:"lamp"`
	Status        string         `json:"status" example:"Showing results for \"lamp\" in home"`
	Items         []ItemResponse `json:"items"`
	Empty         bool           `json:"empty" example:"false"`
}

// DetailResponse represents the detail view
// @Description Fully populated product detail
type DetailResponse struct {
	View       string            `json:"view" example:"detail"`
	Generation uint64            `json:"generation" example:"5"`
	ViewToken  string            `json:"viewToken" example:"eyJhbGciOiJIUzI1NiJ9..."`
	UID        string            `json:"uid,omitempty" example:"u-42"`
	Product    render.DetailView `json:"product"`
}

// SearchRequest is the search box submission
// @Description Category picker label and search text
type SearchRequest struct {
	// Category label; "All" or empty means every category
	Category string `json:"category" form:"category" example:"All"`

	// Search text; empty means no text filter
	Query string `json:"query" form:"query" example:"lamp"`
}

// AcceptedResponse acknowledges a best-effort write
// @Description The signal was handed to the background reporter
type AcceptedResponse struct {
	Status string `json:"status" example:"accepted"`
}

func toItemResponses(outcome render.Outcome) []ItemResponse {
	items := make([]ItemResponse, 0, len(outcome.Items))
	for _, item := range outcome.Items {
		p := item.Product
		items = append(items, ItemResponse{
			PID:         p.PID,
			SID:         p.SID,
			Name:        p.Name,
			Description: p.Description,
			Image:       p.Image,
			Category:    p.Category,
			Price:       p.Price.String(),
			PriceLabel:  item.PriceLabel,
			Rating:      p.Rating,
			Sales:       p.Sales,
			Stock:       p.Stock,
			Clicks:      p.Clicks,
			IsTrending:  item.IsTrending,
			IsLowStock:  item.IsLowStock,
		})
	}
	return items
}

func toListingResponse(result *navigation.ListingResult) ListingResponse {
	controls := result.Outcome.Controls
	return ListingResponse{
		View:          string(navigation.ViewListing),
		Generation:    result.Generation,
		ViewToken:     result.Token,
		UID:           result.UID,
		CategoryLabel: render.AllCategories,
		Items:         toItemResponses(result.Outcome),
		Controls: ControlsResponse{
			Page:            controls.Page,
			PageLabel:       controls.PageLabel,
			PreviousEnabled: controls.PreviousEnabled,
			NextEnabled:     controls.NextEnabled,
		},
		Empty: result.Outcome.Empty,
	}
}

func toSearchResponse(result *navigation.SearchResult) SearchResponse {
	return SearchResponse{
		View:          string(navigation.ViewSearch),
		Generation:    result.Generation,
		ViewToken:     result.Token,
		UID:           result.UID,
		Category:      result.Category,
		CategoryLabel: result.CategoryLabel,
		Query:         result.Query,
		Status:        result.Status,
		Items:         toItemResponses(result.Outcome),
		Empty:         result.Outcome.Empty,
	}
}

func toDetailResponse(result *navigation.DetailResult) DetailResponse {
	return DetailResponse{
		View:       string(navigation.ViewDetail),
		Generation: result.Generation,
		ViewToken:  result.Token,
		UID:        result.UID,
		Product:    *result.View,
	}
}
