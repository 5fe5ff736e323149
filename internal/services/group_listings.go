package services

import "storage-search-service/internal/domain"

// GroupListingsByLocation partitions listings by location id.
//
// Locations appear in the order their first listing was seen and each group
// keeps the input order of its listings. Nothing is dropped or deduplicated.
func GroupListingsByLocation(listings []domain.Listing) []domain.LocationGroup {
	groups := make([]domain.LocationGroup, 0)
	index := make(map[domain.ID]int)

	for _, l := range listings {
		i, ok := index[l.LocationID]
		if !ok {
			i = len(groups)
			index[l.LocationID] = i
			groups = append(groups, domain.LocationGroup{LocationID: l.LocationID})
		}
		groups[i].Listings = append(groups[i].Listings, l)
	}

	return groups
}
