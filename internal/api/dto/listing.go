package dto

import "storage-search-service/internal/domain"

type ListingResponse struct {
	ID           domain.ID `json:"id"`
	LocationID   domain.ID `json:"location_id"`
	Length       float64   `json:"length"`
	PriceInCents int64     `json:"price_in_cents"`
}

type ListListingsResponse struct {
	Listings []ListingResponse `json:"listings"`
}
