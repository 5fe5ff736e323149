package results

import (
	"context"

	"storage-search-service/internal/domain"
)

// NopResultStore discards results. Used when persistence is disabled.
type NopResultStore struct{}

func (NopResultStore) SaveResults(context.Context, []domain.LocationResult) error { return nil }

func (NopResultStore) LatestResults(context.Context) ([]domain.LocationResult, error) {
	return nil, domain.ErrNoResults
}
