// Package stations holds the session's tidal station directory and the
// name filter and location resolver that run over it
package stations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ngmaloney/uk-tide-terminal/internal/admiralty"
	"github.com/ngmaloney/uk-tide-terminal/internal/models"
	_ "modernc.org/sqlite"
)

// memoryDSN keeps the directory off disk; it lives as long as the process
const memoryDSN = "file::memory:"

// ErrStationNotFound is returned when no station has the requested ID
var ErrStationNotFound = errors.New("tide station not found")

// Directory is the read-only station list for one application session
type Directory struct {
	db *sql.DB
}

var (
	shared     *Directory
	sharedOnce sync.Once
	sharedErr  error
)

// Shared returns the process-wide directory, fetching it from client on the
// first call. Later calls return the same directory (or the same error).
// A failed first load is kept for the life of the process and never retried.
func Shared(ctx context.Context, client admiralty.StationClient) (*Directory, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = Load(ctx, client)
	})
	return shared, sharedErr
}

// Load fetches the directory from client and builds a Directory from it
func Load(ctx context.Context, client admiralty.StationClient) (*Directory, error) {
	list, err := client.GetStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching station directory: %w", err)
	}
	return NewDirectory(ctx, list)
}

// NewDirectory stores list in a fresh in-memory database, preserving order
func NewDirectory(ctx context.Context, list []models.Station) (*Directory, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("opening directory database: %w", err)
	}
	// Every pooled connection to :memory: would see its own empty database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := buildDirectory(ctx, db, list); err != nil {
		db.Close()
		return nil, fmt.Errorf("building directory: %w", err)
	}

	slog.Debug("station directory loaded", "stations", len(list))
	return &Directory{db: db}, nil
}

// buildDirectory creates the tide_stations table and inserts list in order
func buildDirectory(ctx context.Context, db *sql.DB, list []models.Station) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE tide_stations (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			name TEXT,
			latitude REAL,
			longitude REAL
		);
		CREATE INDEX idx_tide_stations_id ON tide_stations(id);
	`)
	if err != nil {
		return fmt.Errorf("creating tide_stations table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on error

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO tide_stations (seq, id, name, latitude, longitude) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, s := range list {
		var name sql.NullString
		if s.Name != nil {
			name = sql.NullString{String: *s.Name, Valid: true}
		}
		var lat, lon sql.NullFloat64
		if s.Position != nil {
			lat = sql.NullFloat64{Float64: s.Position.Latitude, Valid: true}
			lon = sql.NullFloat64{Float64: s.Position.Longitude, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, s.ID, name, lat, lon); err != nil {
			return fmt.Errorf("inserting station %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Stations returns every station in directory order
func (d *Directory) Stations(ctx context.Context) ([]models.Station, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT id, name, latitude, longitude FROM tide_stations ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("querying stations: %w", err)
	}
	defer rows.Close()

	var list []models.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// StationByID retrieves a single station by its Admiralty ID
func (d *Directory) StationByID(ctx context.Context, id string) (*models.Station, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT id, name, latitude, longitude FROM tide_stations WHERE id = ? ORDER BY seq LIMIT 1", id)

	s, err := scanStation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrStationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying station by ID: %w", err)
	}
	return &s, nil
}

// Len returns the number of stations in the directory
func (d *Directory) Len(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tide_stations").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting stations: %w", err)
	}
	return n, nil
}

// Close releases the in-memory database
func (d *Directory) Close() error {
	return d.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStation(row scanner) (models.Station, error) {
	var (
		s        models.Station
		name     sql.NullString
		lat, lon sql.NullFloat64
	)
	if err := row.Scan(&s.ID, &name, &lat, &lon); err != nil {
		return models.Station{}, err
	}
	if name.Valid {
		n := name.String
		s.Name = &n
	}
	if lat.Valid && lon.Valid {
		s.Position = &models.Coordinates{Latitude: lat.Float64, Longitude: lon.Float64}
	}
	return s, nil
}
