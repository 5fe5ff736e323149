package ports

import (
	"context"
	"storage-search-service/internal/domain"
)

// Port: audit sink for search results.
type ResultStore interface {
	// Persist a result set, replacing whatever was stored before.
	SaveResults(ctx context.Context, results []domain.LocationResult) error
	// Return the most recently saved result set, or domain.ErrNoResults.
	LatestResults(ctx context.Context) ([]domain.LocationResult, error)
}
