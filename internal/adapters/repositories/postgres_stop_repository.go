package repositories

import (
	"context"
	"cylinder-route-service/internal/domain"
	"cylinder-route-service/internal/platform/obs"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres-backed implementation of the StopRepository port using a pgx pool.
type PostgresStopRepository struct{ Pool *pgxpool.Pool }

func NewPostgresStopRepository(pool *pgxpool.Pool) *PostgresStopRepository {
	return &PostgresStopRepository{Pool: pool}
}

func (p *PostgresStopRepository) ListStops(ctx context.Context) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "stops.postgres.ListStops")(&err)

	if p.Pool == nil {
		return nil, errors.New("postgres stop repository: pool is nil")
	}

	rows, err := p.Pool.Query(ctx, selectStopColumns+` ORDER BY stop_id;`)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}

	stops, err := collectStops(rows)
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}

	return stops, nil
}

func (p *PostgresStopRepository) GetStops(ctx context.Context, ids []string) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "stops.postgres.GetStops")(&err)

	if p.Pool == nil {
		return nil, errors.New("postgres stop repository: pool is nil")
	}

	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []domain.Stop{}, nil
	}

	rows, err := p.Pool.Query(ctx, selectStopColumns+` WHERE stop_id = ANY($1::text[]);`, uniq)
	if err != nil {
		return nil, fmt.Errorf("get stops: query stops table: %w", err)
	}

	found, err := collectStops(rows)
	if err != nil {
		return nil, fmt.Errorf("get stops: %w", err)
	}

	return orderByIDs(ids, found)
}

func collectStops(rows pgx.Rows) ([]domain.Stop, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Stop, error) {
		var (
			id, name, kind string
			lat, lon       *float64
			full, empty    int
		)
		if err := row.Scan(&id, &name, &kind, &lat, &lon, &full, &empty); err != nil {
			return domain.Stop{}, fmt.Errorf("scan row: %w", err)
		}
		return stopFromRow(id, name, kind, lat, lon, full, empty)
	})
}
