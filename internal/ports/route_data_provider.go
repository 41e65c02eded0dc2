package ports

import (
	"context"
	"cylinder-route-service/internal/domain"
)

// Contract for an external routing engine that can replace local estimates.
type RouteDataProvider interface {
	// Return road distance (km), duration (minutes) and per-leg segments
	// for the waypoints in visiting order.
	GetRouteData(ctx context.Context, waypoints []domain.Coordinates) (*domain.ExternalRouteData, error)
}
