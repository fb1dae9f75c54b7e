package repo

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"Estimator/internal/calc/microgreens"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT UNIQUE NOT NULL,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS plant_catalog (
	part_number         TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	seeds_g_per_tray    DOUBLE PRECISION NOT NULL,
	yield_oz_per_tray   DOUBLE PRECISION NOT NULL,
	days_per_tray       DOUBLE PRECISION NOT NULL,
	seed_price_per_25lb DOUBLE PRECISION NOT NULL
)`

const upsertEntry = `INSERT INTO plant_catalog
	(part_number, name, seeds_g_per_tray, yield_oz_per_tray, days_per_tray, seed_price_per_25lb)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (part_number) DO UPDATE SET
	name = EXCLUDED.name,
	seeds_g_per_tray = EXCLUDED.seeds_g_per_tray,
	yield_oz_per_tray = EXCLUDED.yield_oz_per_tray,
	days_per_tray = EXCLUDED.days_per_tray,
	seed_price_per_25lb = EXCLUDED.seed_price_per_25lb`

// Migrate creates the tables when they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return errors.Wrap(err, "migrating schema")
}

type PostgresCatalogRepository struct {
	db *sql.DB
}

func NewPostgresCatalogDB(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

// List returns the catalog ordered by part number.
func (r *PostgresCatalogRepository) List(ctx context.Context) ([]microgreens.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT part_number, name, seeds_g_per_tray, yield_oz_per_tray, days_per_tray, seed_price_per_25lb
FROM plant_catalog ORDER BY part_number`)
	if err != nil {
		return nil, errors.Wrap(err, "listing catalog")
	}
	defer rows.Close()

	var out []microgreens.Entry
	for rows.Next() {
		var e microgreens.Entry
		if err := rows.Scan(&e.PartNumber, &e.Name, &e.SeedsGPerTray, &e.YieldOzPerTray, &e.DaysPerTray, &e.SeedPricePer25Lb); err != nil {
			return nil, errors.Wrap(err, "scanning catalog row")
		}
		out = append(out, e)
	}
	return out, errors.Wrap(rows.Err(), "listing catalog")
}

// Import upserts entries by part number in one transaction.
func (r *PostgresCatalogRepository) Import(ctx context.Context, entries []microgreens.Entry) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "starting import")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertEntry)
	if err != nil {
		return 0, errors.Wrap(err, "preparing import")
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.PartNumber, e.Name, e.SeedsGPerTray, e.YieldOzPerTray, e.DaysPerTray, e.SeedPricePer25Lb); err != nil {
			return 0, errors.Wrapf(err, "importing %s", e.PartNumber)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing import")
	}
	return len(entries), nil
}
