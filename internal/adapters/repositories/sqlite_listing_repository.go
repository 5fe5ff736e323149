package repositories

import (
	"context"
	"database/sql"

	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/obs"

	"github.com/rotisserie/eris"
)

// SQLite-backed implementation of the ListingRepository port.
type SqliteListingRepository struct{ DB *sql.DB }

func NewSqliteListingRepository(db *sql.DB) *SqliteListingRepository {
	return &SqliteListingRepository{DB: db}
}

// Return all listings in the order they were seeded.
func (s *SqliteListingRepository) ListListings(ctx context.Context) (_ []domain.Listing, err error) {
	defer obs.Time(ctx, "listings.sqlite.List")(&err)

	if s.DB == nil {
		return nil, eris.New("sqlite listing repository: DB is nil")
	}

	query := `
	SELECT
		id,
		id_numeric,
		location_id,
		location_id_numeric,
		length,
		price_in_cents
	FROM listings
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "list listings: query listings table")
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0, 64)
	for rows.Next() {
		var l domain.Listing
		err := rows.Scan(
			&l.ID.Value, &l.ID.Numeric,
			&l.LocationID.Value, &l.LocationID.Numeric,
			&l.Length, &l.PriceInCents,
		)
		if err != nil {
			return nil, eris.Wrap(err, "list listings: scan row")
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "list listings: row iteration")
	}

	return listings, nil
}
