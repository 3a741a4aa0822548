package cities

import (
	"context"
	"database/sql"
	"fmt"

	t "roadweather-service/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection holding the static world-city table that
// backs the map's weather overlay.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the city database at path. Use ":memory:" for an
// ephemeral database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open city database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping city database: %w", err)
	}
	if err := initSchema(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cities (
			name TEXT NOT NULL,
			country TEXT NOT NULL,
			population INTEGER NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			PRIMARY KEY (name, country)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create cities schema: %w", err)
	}
	return nil
}

// Seed inserts or replaces city rows.
func (d *DB) Seed(ctx context.Context, cities []t.CityDetails) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR REPLACE INTO cities (name, country, population, lat, lng) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range cities {
		if _, err := stmt.ExecContext(ctx, c.Name, c.Country, c.Population,
			c.Coordinates.Lat, c.Coordinates.Lng); err != nil {
			return fmt.Errorf("failed to seed city %q: %w", c.Name, err)
		}
	}
	return tx.Commit()
}

// EnsureSeeded populates an empty database with the built-in city list.
// An already-populated table is left alone.
func (d *DB) EnsureSeeded(ctx context.Context) error {
	var count int
	if err := d.QueryRowContext(ctx, "SELECT COUNT(*) FROM cities").Scan(&count); err != nil {
		return fmt.Errorf("failed to count cities: %w", err)
	}
	if count > 0 {
		return nil
	}
	return d.Seed(ctx, DefaultCities)
}

// AbovePopulation lists cities at or above the population threshold, most
// populous first.
func (d *DB) AbovePopulation(ctx context.Context, threshold int64) ([]t.CityDetails, error) {
	rows, err := d.QueryContext(ctx,
		"SELECT name, country, population, lat, lng FROM cities WHERE population >= ? ORDER BY population DESC",
		threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	var out []t.CityDetails
	for rows.Next() {
		var c t.CityDetails
		if err := rows.Scan(&c.Name, &c.Country, &c.Population,
			&c.Coordinates.Lat, &c.Coordinates.Lng); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Find looks a city up by name.
func (d *DB) Find(ctx context.Context, name string) (*t.CityDetails, error) {
	var c t.CityDetails
	err := d.QueryRowContext(ctx,
		"SELECT name, country, population, lat, lng FROM cities WHERE name = ?",
		name).Scan(&c.Name, &c.Country, &c.Population, &c.Coordinates.Lat, &c.Coordinates.Lng)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up city %q: %w", name, err)
	}
	return &c, nil
}
