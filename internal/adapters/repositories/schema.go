package repositories

import (
	"cylinder-route-service/internal/domain"
	"cylinder-route-service/internal/platform/db"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the database schema. The DDL is valid for both SQLite and Postgres.
func InitSchema(conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		full_cylinders INTEGER NOT NULL DEFAULT 0,
		empty_cylinders INTEGER NOT NULL DEFAULT 0
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        cache_key TEXT PRIMARY KEY,
        payload TEXT NOT NULL,
        stored_at BIGINT NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stops_kind
    ON stops(kind);
	`

	statements := []string{
		createStopsQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StopSeed struct {
	StopID         string   `json:"stop_id"`
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Lat            *float64 `json:"lat"`
	Lon            *float64 `json:"lon"`
	FullCylinders  int      `json:"full_cylinders"`
	EmptyCylinders int      `json:"empty_cylinders"`
}

// Populate the stops table from a JSON file.
func SeedFromJSON(conn *sql.DB, driver string, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stops: read %q: %w", jsonPath, err)
	}

	var data []StopSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed stops: parse json: %w", err)
	}

	return SeedStops(conn, driver, data)
}

// SeedStops upserts stops after validating them.
func SeedStops(conn *sql.DB, driver string, data []StopSeed) error {
	rows := make([]StopSeed, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.StopID)
		if id == "" {
			return fmt.Errorf("seed stops: item at index %d: stop_id cannot be empty", i+1)
		}

		kind, err := domain.ParseStopKind(item.Kind)
		if err != nil {
			return fmt.Errorf("seed stops: stop_id=%s: %w", id, err)
		}

		if item.FullCylinders < 0 || item.EmptyCylinders < 0 {
			return fmt.Errorf("seed stops: stop_id=%s: cylinder counts must be non-negative", id)
		}

		item.StopID = id
		item.Kind = string(kind)
		rows = append(rows, item)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("seed stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ph := db.Placeholders(driver, 7)
	query := fmt.Sprintf(`
	INSERT INTO stops (
		stop_id,
		name,
		kind,
		lat,
		lon,
		full_cylinders,
		empty_cylinders
	)
	VALUES (%s)
	ON CONFLICT (stop_id) DO UPDATE
	SET name = EXCLUDED.name,
		kind = EXCLUDED.kind,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		full_cylinders = EXCLUDED.full_cylinders,
		empty_cylinders = EXCLUDED.empty_cylinders;
	`, strings.Join(ph, ", "))

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		if _, err := stmt.Exec(s.StopID, s.Name, s.Kind, s.Lat, s.Lon, s.FullCylinders, s.EmptyCylinders); err != nil {
			return fmt.Errorf("seed stops: insert stop_id=%s: %w", s.StopID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stops: commit tx: %w", err)
	}

	return nil
}

// stopFromRow converts nullable columns into a domain Stop.
func stopFromRow(id, name, kind string, lat, lon *float64, full, empty int) (domain.Stop, error) {
	k, err := domain.ParseStopKind(kind)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("stop_id=%s: %w", id, err)
	}

	s := domain.Stop{
		ID:             id,
		Name:           name,
		Kind:           k,
		FullCylinders:  full,
		EmptyCylinders: empty,
	}
	if lat != nil && lon != nil {
		s.Location = &domain.Coordinates{Lat: *lat, Lon: *lon}
	}

	return s, nil
}
