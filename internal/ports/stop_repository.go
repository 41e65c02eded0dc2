package ports

import (
	"context"
	"cylinder-route-service/internal/domain"
)

// Port: a boundary for retrieving Stop entities from a data source.
type StopRepository interface {
	// Retrieve all known stops.
	ListStops(ctx context.Context) ([]domain.Stop, error)
	// Retrieve stops by id, preserving the order of ids.
	// Unknown ids yield an error wrapping domain.ErrStopNotFound.
	GetStops(ctx context.Context, ids []string) ([]domain.Stop, error)
}
