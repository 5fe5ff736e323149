package repositories

import (
	"context"
	"database/sql"

	"storage-search-service/internal/domain"

	"github.com/rotisserie/eris"
)

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return eris.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "init schema: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	// position records file order so listings come back in load order.
	// The *_numeric flags remember whether an id was a JSON number.
	createListingsQuery := `
	CREATE TABLE IF NOT EXISTS listings (
		id TEXT NOT NULL,
		id_numeric INTEGER NOT NULL DEFAULT 0,
		location_id TEXT NOT NULL,
		location_id_numeric INTEGER NOT NULL DEFAULT 0,
		length REAL NOT NULL CHECK (length > 0),
		price_in_cents INTEGER NOT NULL CHECK (price_in_cents >= 0),
		position INTEGER NOT NULL,
		PRIMARY KEY (id, id_numeric)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_listings_position
	ON listings(position);
	`

	statements := []string{
		createListingsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return eris.Wrapf(err, "init schema: exec statement #%d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "init schema: commit tx")
	}

	return nil
}

// Replace the stored listings with the given set, keeping slice order.
// A duplicate id fails the whole seed and leaves the table unchanged.
func SeedListings(ctx context.Context, db *sql.DB, listings []domain.Listing) error {
	if db == nil {
		return eris.New("seed listings: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "seed listings: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings;`); err != nil {
		return eris.Wrap(err, "seed listings: clear listings")
	}

	query := `
	INSERT INTO listings (
		id,
		id_numeric,
		location_id,
		location_id_numeric,
		length,
		price_in_cents,
		position
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return eris.Wrap(err, "seed listings: prepare insert")
	}
	defer stmt.Close()

	for i, l := range listings {
		_, err := stmt.ExecContext(ctx,
			l.ID.Value, l.ID.Numeric,
			l.LocationID.Value, l.LocationID.Numeric,
			l.Length, l.PriceInCents, i,
		)
		if err != nil {
			return eris.Wrapf(err, "seed listings: insert id=%s", idLabel(l.ID))
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "seed listings: commit tx")
	}

	return nil
}

// Populate the database with listings from a JSON or YAML file.
func SeedFromFile(ctx context.Context, db *sql.DB, path string) error {
	listings, err := ReadListingsFile(path)
	if err != nil {
		return eris.Wrap(err, "seed listings")
	}
	return SeedListings(ctx, db, listings)
}
