package dto

import "storage-search-service/internal/domain"

// VehicleEntry is one element of the search request array.
// Pointer fields distinguish a missing key from a zero value.
type VehicleEntry struct {
	Length   *float64 `json:"length"`
	Quantity *int     `json:"quantity"`
}

// LocationResultResponse echoes ids in the JSON type they were loaded with.
type LocationResultResponse struct {
	LocationID        domain.ID   `json:"location_id"`
	ListingIDs        []domain.ID `json:"listing_ids"`
	TotalPriceInCents int64       `json:"total_price_in_cents"`
}

type SearchResponse struct {
	Results []LocationResultResponse `json:"Results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
