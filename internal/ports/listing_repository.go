package ports

import (
	"context"
	"storage-search-service/internal/domain"
)

// Port: a boundary for loading the listing catalog.
type ListingRepository interface {
	// Return every listing in load order. Implementations read the
	// backing store on each call; nothing is cached across requests.
	ListListings(ctx context.Context) ([]domain.Listing, error)
}
