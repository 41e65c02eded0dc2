package ports

import (
	"context"
	"cylinder-route-service/internal/domain"
)

// Cache for external route data keyed by an ordered waypoint fingerprint.
type RouteCache interface {
	// Return the cached data, or nil with no error on a miss.
	Get(ctx context.Context, key string) (*domain.ExternalRouteData, error)
	Put(ctx context.Context, key string, data *domain.ExternalRouteData) error
}
