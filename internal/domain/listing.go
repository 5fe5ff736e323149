package domain

// Represents a rentable storage space offered at a location.
// Listings are loaded once per request and treated as read-only.
type Listing struct {
	ID           ID
	LocationID   ID
	Length       float64
	PriceInCents int64
}

// Ordered set of listings sharing one location id.
// Listing order follows the order the listings were loaded.
type LocationGroup struct {
	LocationID ID
	Listings   []Listing
}

// Total length available at the location when every listing is rented.
func (g LocationGroup) TotalLength() float64 {
	total := 0.0
	for _, l := range g.Listings {
		total += l.Length
	}
	return total
}
