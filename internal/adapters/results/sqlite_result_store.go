package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/obs"

	"github.com/rotisserie/eris"
)

// SqliteResultStore keeps the latest result set in two tables: one row per
// location result plus a single run row that marks a save as having happened,
// so an empty result set can be told apart from no save at all.
type SqliteResultStore struct {
	DB *sql.DB
}

func NewSqliteResultStore(db *sql.DB) *SqliteResultStore {
	return &SqliteResultStore{DB: db}
}

// InitResultSchema creates the result tables if they do not exist. Listing
// ids are stored as a JSON array so numeric and string ids keep their type.
func InitResultSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS result_runs (
		id           INTEGER PRIMARY KEY CHECK (id = 1),
		saved_at     TEXT    NOT NULL,
		result_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS search_results (
		position             INTEGER PRIMARY KEY,
		location_id          TEXT    NOT NULL,
		location_id_numeric  INTEGER NOT NULL DEFAULT 0,
		listing_ids          TEXT    NOT NULL,
		total_price_in_cents INTEGER NOT NULL
	);
	`)
	if err != nil {
		return eris.Wrap(err, "init result schema")
	}
	return nil
}

func (s *SqliteResultStore) SaveResults(ctx context.Context, results []domain.LocationResult) (err error) {
	defer obs.Time(ctx, "results.sqlite.Save")(&err)

	if s.DB == nil {
		return eris.New("save results: db is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "save results: db begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM search_results`); err != nil {
		return eris.Wrap(err, "save results: clear search_results")
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO search_results (
		position,
		location_id,
		location_id_numeric,
		listing_ids,
		total_price_in_cents
	)
	VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return eris.Wrap(err, "save results: db prepare")
	}
	defer stmt.Close()

	for i, r := range results {
		ids := r.ListingIDs
		if ids == nil {
			ids = []domain.ID{}
		}
		b, err := json.Marshal(ids)
		if err != nil {
			return eris.Wrapf(err, "save results: encode listing ids for %q", r.LocationID)
		}
		if _, err := stmt.ExecContext(ctx, i, r.LocationID.Value, r.LocationID.Numeric, string(b), r.TotalPriceInCents); err != nil {
			return eris.Wrapf(err, "save results: insert location=%q", r.LocationID)
		}
	}

	if _, err := tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO result_runs (id, saved_at, result_count)
	VALUES (1, ?, ?)
	`, time.Now().UTC().Format(time.RFC3339Nano), len(results)); err != nil {
		return eris.Wrap(err, "save results: record run")
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "save results: commit")
	}
	return nil
}

func (s *SqliteResultStore) LatestResults(ctx context.Context) (_ []domain.LocationResult, err error) {
	defer obs.Time(ctx, "results.sqlite.Latest")(&err)

	var count int
	err = s.DB.QueryRowContext(ctx, `SELECT result_count FROM result_runs WHERE id = 1`).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoResults
	}
	if err != nil {
		return nil, eris.Wrap(err, "latest results: query result_runs")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		location_id,
		location_id_numeric,
		listing_ids,
		total_price_in_cents
	FROM search_results
	ORDER BY position
	`)
	if err != nil {
		return nil, eris.Wrap(err, "latest results: query search_results")
	}
	defer rows.Close()

	out := make([]domain.LocationResult, 0, count)
	for rows.Next() {
		var (
			r   domain.LocationResult
			ids string
		)
		if err := rows.Scan(&r.LocationID.Value, &r.LocationID.Numeric, &ids, &r.TotalPriceInCents); err != nil {
			return nil, eris.Wrap(err, "latest results: scan row")
		}
		if err := json.Unmarshal([]byte(ids), &r.ListingIDs); err != nil {
			return nil, eris.Wrapf(err, "latest results: decode listing ids for %q", r.LocationID)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "latest results: row iteration")
	}

	return out, nil
}
