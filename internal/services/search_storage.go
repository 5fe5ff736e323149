package services

import (
	"context"

	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/metrics"
	"storage-search-service/internal/platform/obs"
	"storage-search-service/internal/ports"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

type SearchStorageRequest struct {
	Vehicles []domain.VehicleRequest
	Options  FitOptions
}

// SearchStorage answers one storage search request end to end.
//
// The vehicle entries are validated and expanded before the listing store is
// touched, so a malformed request never loads listings. Listings are grouped
// by location, each location is searched for its cheapest feasible
// combination, and the results are sorted by price. The sorted results are
// then handed to the result store; a failure there is logged and does not
// change the returned value.
func SearchStorage(
	ctx context.Context,
	req SearchStorageRequest,
	repo ports.ListingRepository,
	store ports.ResultStore,
) (_ []domain.LocationResult, err error) {
	defer obs.Time(ctx, "services.SearchStorage")(&err)

	vehicles, err := ExpandVehicles(req.Vehicles, req.Options.MaxVehicles)
	if err != nil {
		return nil, eris.Wrap(err, "search storage")
	}

	listings, err := repo.ListListings(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "search storage: list listings")
	}

	groups := GroupListingsByLocation(listings)

	results, err := FitLocations(ctx, RequestedLengths(vehicles), groups, req.Options)
	if err != nil {
		return nil, eris.Wrap(err, "search storage")
	}
	SortResults(results)

	if store != nil {
		if err := store.SaveResults(ctx, results); err != nil {
			metrics.ResultSaveFailures.Inc()
			zap.L().Warn("save results failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Error(err),
			)
		}
	}

	zap.L().Info("storage search complete",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Int("vehicles", len(vehicles)),
		zap.Int("listings", len(listings)),
		zap.Int("locations", len(groups)),
		zap.Int("results", len(results)),
	)

	return results, nil
}
