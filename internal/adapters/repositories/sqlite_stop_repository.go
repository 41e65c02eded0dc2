package repositories

import (
	"context"
	"cylinder-route-service/internal/domain"
	"cylinder-route-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed implementation of the StopRepository port.
type SqliteStopRepository struct{ DB *sql.DB }

func NewSqliteStopRepository(db *sql.DB) *SqliteStopRepository {
	return &SqliteStopRepository{DB: db}
}

const selectStopColumns = `
	SELECT
		stop_id,
		name,
		kind,
		lat,
		lon,
		full_cylinders,
		empty_cylinders
	FROM stops
`

// Return all stops stored in the database.
func (s *SqliteStopRepository) ListStops(ctx context.Context) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "stops.sqlite.ListStops")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite stop repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectStopColumns+` ORDER BY stop_id;`)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops, err := scanStops(rows)
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}

	return stops, nil
}

// Return stops for ids in the order requested. Duplicate ids are allowed
// since a route may revisit a depot.
func (s *SqliteStopRepository) GetStops(ctx context.Context, ids []string) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "stops.sqlite.GetStops")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite stop repository: DB is nil")
	}

	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []domain.Stop{}, nil
	}

	ph := make([]string, len(uniq))
	args := make([]any, len(uniq))
	for i, id := range uniq {
		ph[i] = "?"
		args[i] = id
	}

	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(selectStopColumns+` WHERE stop_id IN (%s);`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get stops: query stops table: %w", err)
	}
	defer rows.Close()

	found, err := scanStops(rows)
	if err != nil {
		return nil, fmt.Errorf("get stops: %w", err)
	}

	return orderByIDs(ids, found)
}

func scanStops(rows *sql.Rows) ([]domain.Stop, error) {
	stops := make([]domain.Stop, 0, 32)
	for rows.Next() {
		var (
			id, name, kind string
			lat, lon       sql.NullFloat64
			full, empty    int
		)
		if err := rows.Scan(&id, &name, &kind, &lat, &lon, &full, &empty); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		stop, err := stopFromRow(id, name, kind, nullable(lat), nullable(lon), full, empty)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		stops = append(stops, stop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return stops, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	return uniq
}

func orderByIDs(ids []string, found []domain.Stop) ([]domain.Stop, error) {
	byID := make(map[string]domain.Stop, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	out := make([]domain.Stop, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[strings.TrimSpace(id)]
		if !ok {
			return nil, fmt.Errorf("stop_id=%q: %w", id, domain.ErrStopNotFound)
		}
		out = append(out, s)
	}
	return out, nil
}
