package services

import (
	"context"
	"cylinder-route-service/internal/adapters/routing"
	"cylinder-route-service/internal/domain"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapRouteCache struct {
	mu      sync.Mutex
	entries map[string]*domain.ExternalRouteData
	getErr  error
	puts    int
}

func newMapRouteCache() *mapRouteCache {
	return &mapRouteCache{entries: map[string]*domain.ExternalRouteData{}}
}

func (c *mapRouteCache) Get(ctx context.Context, key string) (*domain.ExternalRouteData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *mapRouteCache) Put(ctx context.Context, key string, data *domain.ExternalRouteData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	c.puts++
	return nil
}

var engineRoute = &domain.ExternalRouteData{
	Distance: 40,
	Duration: 90,
	WaypointData: []domain.Segment{
		{Distance: 15, Duration: 30},
		{Distance: 25, Duration: 60},
	},
	TrafficConditions: domain.TrafficModerate,
}

func newTestPlanner(t *testing.T, provider *routing.MockRouteProvider, cache *mapRouteCache) *RoutePlanner {
	t.Helper()

	a := newTestAggregator(t, DefaultModelConfig(), rushHour)
	p := NewRoutePlanner(a, NewRouteSequencer(), nil, nil)
	if provider != nil {
		p.Provider = provider
	}
	if cache != nil {
		p.Cache = cache
	}
	return p
}

func TestPlanLocalEstimate(t *testing.T) {
	p := newTestPlanner(t, nil, nil)

	plan, err := p.Plan(context.Background(), PlanRouteRequest{
		Locations:         equatorRoute(5, 5),
		Params:            domain.OptimizationParams{UseRealTimeData: true},
		FuelPricePerLiter: 1.5,
	})
	require.NoError(t, err)

	assert.False(t, plan.Optimized)
	assert.Nil(t, plan.Savings)
	assert.False(t, plan.Metrics.UsingRealTimeData)
	assert.Len(t, plan.Locations, 3)
}

func TestPlanUsesProviderAndCache(t *testing.T) {
	provider := routing.NewMockRouteProvider(engineRoute, nil)
	cache := newMapRouteCache()
	p := newTestPlanner(t, provider, cache)

	req := PlanRouteRequest{
		Locations:         equatorRoute(15, 25),
		Params:            domain.OptimizationParams{UseRealTimeData: true, OptimizeForDistance: true},
		FuelPricePerLiter: 1.5,
	}

	first, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, first.Metrics.UsingRealTimeData)
	assert.Equal(t, domain.TrafficModerate, first.Metrics.TrafficConditions)
	assert.InDelta(t, 36.0, first.Metrics.Distance, 1e-9)
	assert.Equal(t, 1, provider.Calls())
	assert.Equal(t, 1, cache.puts)

	second, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, 1, provider.Calls(), "second plan should be served from cache")
}

func TestPlanSkipsProviderWhenNotRequested(t *testing.T) {
	provider := routing.NewMockRouteProvider(engineRoute, nil)
	p := newTestPlanner(t, provider, nil)

	plan, err := p.Plan(context.Background(), PlanRouteRequest{
		Locations:         equatorRoute(15, 25),
		FuelPricePerLiter: 1.5,
	})
	require.NoError(t, err)
	assert.False(t, plan.Metrics.UsingRealTimeData)
	assert.Zero(t, provider.Calls())

	// A stop without coordinates keeps the whole route local.
	stops := equatorRoute(15, 25)
	stops[1].Location = nil
	_, err = p.Plan(context.Background(), PlanRouteRequest{
		Locations:         stops,
		Params:            domain.OptimizationParams{UseRealTimeData: true},
		FuelPricePerLiter: 1.5,
	})
	require.NoError(t, err)
	assert.Zero(t, provider.Calls())
}

func TestPlanFallsBackWhenProviderFails(t *testing.T) {
	provider := routing.NewMockRouteProvider(nil, errors.New("engine down"))
	cache := newMapRouteCache()
	cache.getErr = errors.New("cache down")
	p := newTestPlanner(t, provider, cache)

	plan, err := p.Plan(context.Background(), PlanRouteRequest{
		Locations:         equatorRoute(100),
		Params:            domain.OptimizationParams{UseRealTimeData: true},
		FuelPricePerLiter: 1.5,
	})
	require.NoError(t, err)
	assert.False(t, plan.Metrics.UsingRealTimeData)
	assert.Equal(t, domain.TrafficHeavy, plan.Metrics.TrafficConditions)
	assert.Equal(t, 1, provider.Calls())
	assert.Zero(t, cache.puts)
}

func TestPlanOptimizeReportsSavings(t *testing.T) {
	p := newTestPlanner(t, nil, nil)

	route := []domain.Stop{
		stopAt("start", domain.StopKindDepot, 0, 0.001),
		stopAt("far", domain.StopKindCustomer, 0, 0.30),
		stopAt("near", domain.StopKindCustomer, 0, 0.01),
		stopAt("end", domain.StopKindDepot, 0, 0.001),
	}

	plan, err := p.Plan(context.Background(), PlanRouteRequest{
		Locations:         route,
		FuelPricePerLiter: 1.5,
		Optimize:          true,
	})
	require.NoError(t, err)

	assert.True(t, plan.Optimized)
	assert.Equal(t, []string{"start", "near", "far", "end"}, ids(plan.Locations))
	require.NotNil(t, plan.Savings)
	assert.GreaterOrEqual(t, plan.Savings.TotalCost, 0.0)
	// The request is not mutated.
	assert.Equal(t, []string{"start", "far", "near", "end"}, ids(route))
}

func TestPlanFlagsCapacity(t *testing.T) {
	p := newTestPlanner(t, nil, nil)
	vehicle, err := domain.NewVehicle("truck-1", 400)
	require.NoError(t, err)

	route := []domain.Stop{
		{ID: "D", Kind: domain.StopKindDepot, FullCylinders: 50},
		{ID: "C", Kind: domain.StopKindCustomer, FullCylinders: 10, EmptyCylinders: 8},
		{ID: "E", Kind: domain.StopKindDepot},
	}

	plan, err := p.Plan(context.Background(), PlanRouteRequest{Locations: route, FuelPricePerLiter: 1, Vehicle: vehicle})
	require.NoError(t, err)
	assert.True(t, plan.Metrics.CapacityExceeded)

	// The plan carries the profile the capacity check used.
	assert.InDelta(t, plan.Metrics.TotalWeight, plan.Load.MaxWeight, 1e-9)
	assert.Equal(t, []float64{450, 456, 456}, plan.Load.PerStopWeight)
	require.Len(t, plan.Load.PerStop, 3)
	assert.Equal(t, domain.StopLoad{FullOnBoard: 40, EmptyOnBoard: 8, WeightKg: 456}, plan.Load.PerStop[1])

	roomy, err := domain.NewVehicle("truck-2", 456)
	require.NoError(t, err)
	plan, err = p.Plan(context.Background(), PlanRouteRequest{Locations: route, FuelPricePerLiter: 1, Vehicle: roomy})
	require.NoError(t, err)
	assert.False(t, plan.Metrics.CapacityExceeded)

	plan, err = p.Plan(context.Background(), PlanRouteRequest{Locations: route, FuelPricePerLiter: 1})
	require.NoError(t, err)
	assert.False(t, plan.Metrics.CapacityExceeded)
}

func TestPlanRejectsNegativeFuelPrice(t *testing.T) {
	p := newTestPlanner(t, nil, nil)

	_, err := p.Plan(context.Background(), PlanRouteRequest{Locations: equatorRoute(5), FuelPricePerLiter: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidFuelPrice)
}

func TestPlanManyKeepsOrder(t *testing.T) {
	p := newTestPlanner(t, nil, nil)

	reqs := make([]PlanRouteRequest, 0, 12)
	for i := 1; i <= 12; i++ {
		reqs = append(reqs, PlanRouteRequest{
			Locations:         equatorRoute(float64(i * 10)),
			FuelPricePerLiter: 1.5,
		})
	}

	plans, err := p.PlanMany(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, plans, len(reqs))

	for i := 1; i < len(plans); i++ {
		assert.Greater(t, plans[i].Metrics.Distance, plans[i-1].Metrics.Distance)
	}
}

func TestPlanManyStopsOnError(t *testing.T) {
	p := newTestPlanner(t, nil, nil)

	_, err := p.PlanMany(context.Background(), []PlanRouteRequest{
		{Locations: equatorRoute(5), FuelPricePerLiter: 1},
		{Locations: equatorRoute(5), FuelPricePerLiter: -1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidFuelPrice)
	assert.ErrorContains(t, err, "route #2")
}

func TestRouteCacheKey(t *testing.T) {
	a := []domain.Coordinates{{Lat: -34.603701, Lon: -58.381601}, {Lat: -34.6, Lon: -58.4}}
	b := []domain.Coordinates{{Lat: -34.603702, Lon: -58.381602}, {Lat: -34.6, Lon: -58.4}}
	reversed := []domain.Coordinates{a[1], a[0]}

	assert.Equal(t, RouteCacheKey(a), RouteCacheKey(b))
	assert.NotEqual(t, RouteCacheKey(a), RouteCacheKey(reversed))
	assert.Contains(t, RouteCacheKey(a), "route:")
}
