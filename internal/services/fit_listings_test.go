package services

import (
	"context"
	"math/rand/v2"
	"strconv"
	"testing"

	"storage-search-service/internal/domain"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(id, location string, length float64, price int64) domain.Listing {
	return domain.Listing{
		ID:           domain.StringID(id),
		LocationID:   domain.StringID(location),
		Length:       length,
		PriceInCents: price,
	}
}

func group(location string, listings ...domain.Listing) domain.LocationGroup {
	return domain.LocationGroup{LocationID: domain.StringID(location), Listings: listings}
}

func ids(values ...string) []domain.ID {
	out := make([]domain.ID, 0, len(values))
	for _, v := range values {
		out = append(out, domain.StringID(v))
	}
	return out
}

func TestFitLocationNeedsBothListings(t *testing.T) {
	g := group("L1",
		listing("1", "L1", 10, 500),
		listing("2", "L1", 15, 300),
	)

	res, ok, err := FitLocation(context.Background(), 20, g)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "L1", res.LocationID.String())
	assert.Equal(t, ids("1", "2"), res.ListingIDs)
	assert.Equal(t, int64(800), res.TotalPriceInCents)
	assert.Equal(t, 25.0, res.TotalLength)
}

func TestFitLocationEmptyRequestPicksEmptyCombo(t *testing.T) {
	res, ok, err := FitLocation(context.Background(), 0, group("L2", listing("3", "L2", 5, 100)))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "L2", res.LocationID.String())
	assert.NotNil(t, res.ListingIDs)
	assert.Empty(t, res.ListingIDs)
	assert.Zero(t, res.TotalPriceInCents)

	// A location with no listings still satisfies an empty request.
	res, ok, err = FitLocation(context.Background(), 0, group("L0"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, res.ListingIDs)
}

func TestFitLocationInfeasible(t *testing.T) {
	_, ok, err := FitLocation(context.Background(), 30, group("L3", listing("4", "L3", 10, 200)))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = FitLocation(context.Background(), 1, group("L0"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFitLocationTieKeepsFirstEnumerated(t *testing.T) {
	g := group("L5",
		listing("a", "L5", 30, 400),
		listing("b", "L5", 30, 400),
		listing("c", "L5", 10, 100),
	)

	for range 5 {
		res, ok, err := FitLocation(context.Background(), 25, g)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ids("a"), res.ListingIDs)
	}

	// The pair {x, y} costs the same as {z} but is enumerated after it.
	g = group("L6",
		listing("x", "L6", 10, 200),
		listing("y", "L6", 10, 200),
		listing("z", "L6", 20, 400),
	)
	res, ok, err := FitLocation(context.Background(), 20, g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ids("z"), res.ListingIDs)
	assert.Equal(t, int64(400), res.TotalPriceInCents)
}

func TestFitLocationCancelled(t *testing.T) {
	listings := make([]domain.Listing, 0, 14)
	for i := range 14 {
		listings = append(listings, listing(strconv.Itoa(i), "big", 1, int64(i)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := FitLocation(ctx, 3, group("big", listings...))
	require.Error(t, err)
	assert.True(t, eris.Is(err, context.Canceled))
}

func TestFitLocationsScenarioOrdering(t *testing.T) {
	groups := []domain.LocationGroup{
		group("L1", listing("1", "L1", 10, 500), listing("2", "L1", 15, 300)),
		group("L3", listing("4", "L3", 10, 200)),
		group("L4", listing("5", "L4", 25, 500)),
	}

	results, err := FitLocations(context.Background(), []float64{20}, groups, FitOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Location order before sorting.
	assert.Equal(t, "L1", results[0].LocationID.String())
	assert.Equal(t, "L4", results[1].LocationID.String())

	SortResults(results)
	assert.Equal(t, "L4", results[0].LocationID.String())
	assert.Equal(t, int64(500), results[0].TotalPriceInCents)
	assert.Equal(t, "L1", results[1].LocationID.String())
	assert.Equal(t, int64(800), results[1].TotalPriceInCents)
}

func TestFitLocationsEmptyRequestCoversEveryLocation(t *testing.T) {
	groups := []domain.LocationGroup{
		group("L1", listing("1", "L1", 10, 500)),
		group("L2", listing("3", "L2", 5, 100)),
		group("L9"),
	}

	results, err := FitLocations(context.Background(), nil, groups, FitOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, groups[i].LocationID, r.LocationID)
		assert.Empty(t, r.ListingIDs)
		assert.Zero(t, r.TotalPriceInCents)
	}
}

func TestFitLocationsListingLimit(t *testing.T) {
	groups := []domain.LocationGroup{
		group("small", listing("1", "small", 10, 100)),
		group("big",
			listing("2", "big", 10, 100),
			listing("3", "big", 10, 100),
			listing("4", "big", 10, 100),
		),
	}

	_, err := FitLocations(context.Background(), []float64{5}, groups, FitOptions{MaxListingsPerLocation: 2})
	require.Error(t, err)
	assert.True(t, eris.Is(err, domain.ErrTooManyListings))

	results, err := FitLocations(context.Background(), []float64{5}, groups, FitOptions{MaxListingsPerLocation: 3})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSortResultsStable(t *testing.T) {
	results := []domain.LocationResult{
		{LocationID: domain.StringID("a"), TotalPriceInCents: 300},
		{LocationID: domain.StringID("b"), TotalPriceInCents: 100},
		{LocationID: domain.StringID("c"), TotalPriceInCents: 300},
		{LocationID: domain.StringID("d"), TotalPriceInCents: 100},
	}

	SortResults(results)

	order := make([]string, 0, len(results))
	for _, r := range results {
		order = append(order, r.LocationID.String())
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, order)
}

// bruteForce checks every bitmask independently of Subsets and returns the
// minimum feasible price at the location, or -1 when nothing fits.
func bruteForce(required float64, listings []domain.Listing) int64 {
	best := int64(-1)
	for mask := 0; mask < 1<<len(listings); mask++ {
		length := 0.0
		var price int64
		for i, l := range listings {
			if mask&(1<<i) != 0 {
				length += l.Length
				price += l.PriceInCents
			}
		}
		if length >= required && (best < 0 || price < best) {
			best = price
		}
	}
	return best
}

func randomGroups(r *rand.Rand) []domain.LocationGroup {
	var listings []domain.Listing
	n := r.IntN(25)
	for i := range n {
		loc := "L" + strconv.Itoa(r.IntN(5))
		listings = append(listings, listing(
			strconv.Itoa(i),
			loc,
			float64(10*(1+r.IntN(4))),
			int64(100*(1+r.IntN(8))),
		))
	}
	return GroupListingsByLocation(listings)
}

func TestFitLocationsMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for round := range 200 {
		groups := randomGroups(r)

		requested := make([]float64, r.IntN(4))
		for i := range requested {
			requested[i] = float64(5 + r.IntN(30))
		}
		required := TotalLength(requested)

		results, err := FitLocations(context.Background(), requested, groups, FitOptions{})
		require.NoError(t, err)
		SortResults(results)

		byLocation := make(map[domain.ID]domain.LocationResult, len(results))
		for i, res := range results {
			byLocation[res.LocationID] = res
			if i > 0 {
				assert.LessOrEqual(t, results[i-1].TotalPriceInCents, res.TotalPriceInCents, "round %d", round)
			}
		}

		for _, g := range groups {
			want := bruteForce(required, g.Listings)
			res, ok := byLocation[g.LocationID]
			if want < 0 {
				assert.False(t, ok, "round %d: %s should be infeasible", round, g.LocationID)
				continue
			}
			require.True(t, ok, "round %d: %s should be feasible", round, g.LocationID)
			assert.Equal(t, want, res.TotalPriceInCents, "round %d: %s", round, g.LocationID)

			lengthByID := make(map[domain.ID]float64, len(g.Listings))
			for _, l := range g.Listings {
				lengthByID[l.ID] = l.Length
			}
			covered := 0.0
			for _, id := range res.ListingIDs {
				covered += lengthByID[id]
			}
			assert.GreaterOrEqual(t, covered, required, "round %d: %s", round, g.LocationID)
		}
	}
}

func TestFitLocationsParallelMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))

	for range 50 {
		groups := randomGroups(r)
		requested := []float64{float64(10 + r.IntN(40))}

		seq, err := FitLocations(context.Background(), requested, groups, FitOptions{Workers: 1})
		require.NoError(t, err)

		par, err := FitLocations(context.Background(), requested, groups, FitOptions{Workers: 4})
		require.NoError(t, err)

		assert.Equal(t, seq, par)
	}
}

func TestFitLocationsParallelCancelled(t *testing.T) {
	listings := make([]domain.Listing, 0, 26)
	for i := range 13 {
		listings = append(listings, listing("a"+strconv.Itoa(i), "A", 1, 1))
		listings = append(listings, listing("b"+strconv.Itoa(i), "B", 1, 1))
	}
	groups := GroupListingsByLocation(listings)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := FitLocations(ctx, []float64{2}, groups, FitOptions{Workers: 2})
	require.Error(t, err)
	assert.Nil(t, results)
}
