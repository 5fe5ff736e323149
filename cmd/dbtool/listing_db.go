package main

import (
	"context"
	"database/sql"

	"storage-search-service/internal/adapters/repositories"
	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// listingDB is whichever listing database the tool was pointed at.
type listingDB struct {
	driver string
	sqlite *sql.DB
	pg     *pgxpool.Pool
}

func openListingDB(ctx context.Context) (*listingDB, error) {
	driver := driverFlag
	if driver == "" {
		driver = cfg.Listings.Driver
	}

	switch driver {
	case "sqlite":
		sqlDB, err := db.OpenSqlite(cfg.Listings.SqlitePath)
		if err != nil {
			return nil, err
		}
		return &listingDB{driver: driver, sqlite: sqlDB}, nil
	case "postgres":
		if cfg.Listings.DatabaseURL == "" {
			return nil, eris.New("listings.database_url (DATABASE_URL) is required for postgres")
		}
		pool, err := db.OpenPostgres(ctx, cfg.Listings.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &listingDB{driver: driver, pg: pool}, nil
	default:
		return nil, eris.Errorf("driver %q has no database; use sqlite or postgres", driver)
	}
}

func (l *listingDB) initSchema(ctx context.Context) error {
	if l.pg != nil {
		return repositories.InitPostgresSchema(ctx, l.pg)
	}
	return repositories.InitSchema(ctx, l.sqlite)
}

func (l *listingDB) seed(ctx context.Context, listings []domain.Listing) error {
	if l.pg != nil {
		return repositories.SeedPostgresListings(ctx, l.pg, listings)
	}
	return repositories.SeedListings(ctx, l.sqlite, listings)
}

func (l *listingDB) Close() {
	if l.pg != nil {
		l.pg.Close()
	}
	if l.sqlite != nil {
		_ = l.sqlite.Close()
	}
}
