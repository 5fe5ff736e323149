package results

import (
	"encoding/json"

	"storage-search-service/internal/domain"

	"github.com/rotisserie/eris"
)

// resultRecord is the persisted shape of one LocationResult. It matches the
// search response entries so the stored file reads the same as the reply.
type resultRecord struct {
	LocationID        domain.ID   `json:"location_id"`
	ListingIDs        []domain.ID `json:"listing_ids"`
	TotalPriceInCents int64       `json:"total_price_in_cents"`
}

func encodeResults(results []domain.LocationResult) ([]byte, error) {
	records := make([]resultRecord, 0, len(results))
	for _, r := range results {
		ids := r.ListingIDs
		if ids == nil {
			ids = []domain.ID{}
		}
		records = append(records, resultRecord{
			LocationID:        r.LocationID,
			ListingIDs:        ids,
			TotalPriceInCents: r.TotalPriceInCents,
		})
	}

	b, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, eris.Wrap(err, "encode results")
	}
	return b, nil
}

func decodeResults(b []byte) ([]domain.LocationResult, error) {
	var records []resultRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, eris.Wrap(err, "decode results")
	}

	results := make([]domain.LocationResult, 0, len(records))
	for _, r := range records {
		ids := r.ListingIDs
		if ids == nil {
			ids = []domain.ID{}
		}
		results = append(results, domain.LocationResult{
			LocationID:        r.LocationID,
			ListingIDs:        ids,
			TotalPriceInCents: r.TotalPriceInCents,
		})
	}
	return results, nil
}
