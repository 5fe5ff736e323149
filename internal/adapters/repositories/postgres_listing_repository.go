package repositories

import (
	"context"

	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/db"
	"storage-search-service/internal/platform/obs"

	"github.com/rotisserie/eris"
)

// Postgres-backed implementation of the ListingRepository port.
type PostgresListingRepository struct {
	Pool db.Pool
}

func NewPostgresListingRepository(pool db.Pool) *PostgresListingRepository {
	return &PostgresListingRepository{Pool: pool}
}

// Return all listings in the order they were seeded.
func (p *PostgresListingRepository) ListListings(ctx context.Context) (_ []domain.Listing, err error) {
	defer obs.Time(ctx, "listings.postgres.List")(&err)

	if p.Pool == nil {
		return nil, eris.New("postgres listing repository: pool is nil")
	}

	q := `
	SELECT id, id_numeric, location_id, location_id_numeric, length, price_in_cents
	FROM listings
	ORDER BY position;
	`

	rows, err := p.Pool.Query(ctx, q)
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

// Initialize the Postgres listings schema.
func InitPostgresSchema(ctx context.Context, pool db.Pool) error {
	if pool == nil {
		return eris.New("init postgres schema: pool is nil")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			id TEXT NOT NULL,
			id_numeric BOOLEAN NOT NULL DEFAULT FALSE,
			location_id TEXT NOT NULL,
			location_id_numeric BOOLEAN NOT NULL DEFAULT FALSE,
			length DOUBLE PRECISION NOT NULL CHECK (length > 0),
			price_in_cents BIGINT NOT NULL CHECK (price_in_cents >= 0),
			position INTEGER NOT NULL,
			PRIMARY KEY (id, id_numeric)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_position ON listings(position);`,
	}

	for i, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return eris.Wrapf(err, "init postgres schema: exec statement #%d", i+1)
		}
	}

	return nil
}

// Replace the stored listings with the given set, keeping slice order.
// A duplicate id fails the whole seed and the transaction is rolled back.
func SeedPostgresListings(ctx context.Context, pool db.Pool, listings []domain.Listing) error {
	if pool == nil {
		return eris.New("seed postgres listings: pool is nil")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "seed postgres listings: begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM listings;`); err != nil {
		return eris.Wrap(err, "seed postgres listings: clear listings")
	}

	q := `
	INSERT INTO listings (id, id_numeric, location_id, location_id_numeric, length, price_in_cents, position)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	for i, l := range listings {
		_, err := tx.Exec(ctx, q,
			l.ID.Value, l.ID.Numeric,
			l.LocationID.Value, l.LocationID.Numeric,
			l.Length, l.PriceInCents, i,
		)
		if err != nil {
			return eris.Wrapf(err, "seed postgres listings: insert id=%s", idLabel(l.ID))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "seed postgres listings: commit tx")
	}

	return nil
}
