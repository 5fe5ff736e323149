package services

import (
	"cmp"
	"context"
	"slices"
	"time"

	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/metrics"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// How many combinations are evaluated between cancellation checks.
const ctxCheckInterval = 4096

// FitOptions bounds the exhaustive search.
type FitOptions struct {
	// Fail the whole search when any location holds more listings than this.
	// Zero means unlimited.
	MaxListingsPerLocation int
	// Number of locations searched concurrently. Values below 2 search
	// locations one after another.
	Workers int
	// Fail a request that expands to more vehicles than this. Zero means
	// DefaultMaxVehicles; there is no unlimited setting.
	MaxVehicles int
}

// VehicleLimit is the vehicle cap a request is checked against.
func (o FitOptions) VehicleLimit() int {
	if o.MaxVehicles <= 0 {
		return DefaultMaxVehicles
	}
	return o.MaxVehicles
}

// TotalLength sums lengths in slice order.
func TotalLength(lengths []float64) float64 {
	total := 0.0
	for _, l := range lengths {
		total += l
	}
	return total
}

// FitLocation finds the cheapest subset of a location's listings whose summed
// length is at least required.
//
// Every subset is enumerated (see Subsets), so the cost is O(2^k) in the
// number of listings at the location. When several subsets share the minimum
// price the first one enumerated wins. ok is false when no subset is long
// enough; with required == 0 the empty subset always fits at price 0.
func FitLocation(
	ctx context.Context,
	required float64,
	group domain.LocationGroup,
) (_ domain.LocationResult, ok bool, _ error) {
	start := time.Now()
	defer func() { metrics.LocationFitDuration.Observe(time.Since(start).Seconds()) }()

	listings := group.Listings

	// Lengths are positive, so a subset never exceeds the full set.
	if group.TotalLength() < required {
		return domain.LocationResult{}, false, nil
	}

	var (
		best      []int
		bestPrice int64
		found     bool
		evaluated int
	)

	for idx := range Subsets(len(listings)) {
		evaluated++
		if evaluated%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				metrics.CombosEvaluated.Add(float64(evaluated))
				return domain.LocationResult{}, false, eris.Wrapf(err, "fit location %q", group.LocationID)
			}
		}

		if comboLength(listings, idx) < required {
			continue
		}

		// Strict comparison keeps the earliest subset among equal prices.
		price := comboPrice(listings, idx)
		if !found || price < bestPrice {
			found = true
			bestPrice = price
			best = append(best[:0], idx...)
		}
	}
	metrics.CombosEvaluated.Add(float64(evaluated))

	if !found {
		return domain.LocationResult{}, false, nil
	}

	ids := make([]domain.ID, 0, len(best))
	for _, i := range best {
		ids = append(ids, listings[i].ID)
	}

	return domain.LocationResult{
		LocationID:        group.LocationID,
		ListingIDs:        ids,
		TotalPriceInCents: bestPrice,
		TotalLength:       comboLength(listings, best),
	}, true, nil
}

// FitLocations runs FitLocation for every group and returns one result per
// location that has a feasible combination, in group order.
//
// Locations are independent. With opts.Workers > 1 they are searched
// concurrently; each result is stored at its group's position so the output
// does not depend on scheduling. The first error cancels the remaining
// searches and fails the call with no partial results.
func FitLocations(
	ctx context.Context,
	requestedLengths []float64,
	groups []domain.LocationGroup,
	opts FitOptions,
) ([]domain.LocationResult, error) {
	if opts.MaxListingsPerLocation > 0 {
		for _, g := range groups {
			if len(g.Listings) > opts.MaxListingsPerLocation {
				return nil, eris.Wrapf(
					domain.ErrTooManyListings,
					"fit locations: location %q has %d listings (limit %d)",
					g.LocationID, len(g.Listings), opts.MaxListingsPerLocation,
				)
			}
		}
	}

	required := TotalLength(requestedLengths)
	found := make([]*domain.LocationResult, len(groups))

	if opts.Workers < 2 {
		for i, g := range groups {
			res, ok, err := FitLocation(ctx, required, g)
			if err != nil {
				return nil, eris.Wrap(err, "fit locations")
			}
			if ok {
				found[i] = &res
			}
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(opts.Workers)

		for i, g := range groups {
			eg.Go(func() error {
				res, ok, err := FitLocation(egCtx, required, g)
				if err != nil {
					return err
				}
				if ok {
					found[i] = &res
				}
				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return nil, eris.Wrap(err, "fit locations")
		}
	}

	results := make([]domain.LocationResult, 0, len(groups))
	for _, r := range found {
		if r != nil {
			results = append(results, *r)
		}
	}

	return results, nil
}

// SortResults orders results by ascending total price. The sort is stable,
// so equal prices keep their location order.
func SortResults(results []domain.LocationResult) {
	slices.SortStableFunc(results, func(a, b domain.LocationResult) int {
		return cmp.Compare(a.TotalPriceInCents, b.TotalPriceInCents)
	})
}

func comboLength(listings []domain.Listing, idx []int) float64 {
	total := 0.0
	for _, i := range idx {
		total += listings[i].Length
	}
	return total
}

func comboPrice(listings []domain.Listing, idx []int) int64 {
	var total int64
	for _, i := range idx {
		total += listings[i].PriceInCents
	}
	return total
}
