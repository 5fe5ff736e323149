package domain

// Cheapest feasible set of listings at one location.
// ListingIDs keep the order in which the combination was enumerated.
type LocationResult struct {
	LocationID        ID
	ListingIDs        []ID
	TotalPriceInCents int64
	TotalLength       float64
}
