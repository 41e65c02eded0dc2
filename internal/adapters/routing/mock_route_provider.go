package routing

import (
	"context"
	"cylinder-route-service/internal/domain"
	"sync"
)

// MockRouteProvider returns canned route data, or Err when set.
type MockRouteProvider struct {
	Data *domain.ExternalRouteData
	Err  error

	mu    sync.Mutex
	calls [][]domain.Coordinates
}

func NewMockRouteProvider(data *domain.ExternalRouteData, err error) *MockRouteProvider {
	return &MockRouteProvider{Data: data, Err: err}
}

func (p *MockRouteProvider) GetRouteData(ctx context.Context, waypoints []domain.Coordinates) (*domain.ExternalRouteData, error) {
	p.mu.Lock()
	p.calls = append(p.calls, append([]domain.Coordinates(nil), waypoints...))
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}
	if p.Data == nil {
		return nil, nil
	}

	cp := *p.Data
	cp.WaypointData = append([]domain.Segment(nil), p.Data.WaypointData...)
	return &cp, nil
}

// Calls returns how many times GetRouteData was invoked.
func (p *MockRouteProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
