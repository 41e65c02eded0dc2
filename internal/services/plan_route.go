package services

import (
	"context"
	"cylinder-route-service/internal/domain"
	"cylinder-route-service/internal/platform/obs"
	"cylinder-route-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// Upper bound on routes evaluated at once by PlanMany.
const maxConcurrentPlans = 5

type PlanRouteRequest struct {
	Locations         []domain.Stop
	Params            domain.OptimizationParams
	FuelPricePerLiter float64
	Vehicle           *domain.Vehicle
	Optimize          bool
}

// RoutePlanner is the session-facing entry point. It owns no route state:
// every call works only on its request and the injected collaborators.
//
// Provider and Cache are optional. Any failure in either is logged and the
// plan falls back to local estimation.
type RoutePlanner struct {
	Aggregator *RouteMetricsAggregator
	Sequencer  *RouteSequencer
	Provider   ports.RouteDataProvider
	Cache      ports.RouteCache
}

func NewRoutePlanner(
	aggregator *RouteMetricsAggregator,
	sequencer *RouteSequencer,
	provider ports.RouteDataProvider,
	cache ports.RouteCache,
) *RoutePlanner {
	return &RoutePlanner{
		Aggregator: aggregator,
		Sequencer:  sequencer,
		Provider:   provider,
		Cache:      cache,
	}
}

// Plan optionally reorders the middle stops and computes metrics for the
// resulting order. With Optimize set it also reports savings against the
// order the caller supplied.
func (p *RoutePlanner) Plan(ctx context.Context, req PlanRouteRequest) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if p.Aggregator == nil {
		return nil, errors.New("plan route: aggregator must be non-nil")
	}
	if err := ValidateFuelPrice(req.FuelPricePerLiter); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	locations := append([]domain.Stop(nil), req.Locations...)
	optimized := req.Optimize && len(locations) >= 3
	if optimized {
		locations = p.sequencer().OptimizeRoute(locations, req.Params)
	}

	metrics, load, err := p.metricsFor(ctx, locations, req)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	plan := &domain.RoutePlan{
		Locations: locations,
		Metrics:   metrics,
		Load:      load,
		Optimized: optimized,
	}

	if optimized {
		original, _, err := p.metricsFor(ctx, req.Locations, req)
		if err != nil {
			return nil, fmt.Errorf("plan route: original order: %w", err)
		}
		savings := Compare(original, metrics)
		plan.Savings = &savings
	}

	return plan, nil
}

// PlanMany plans independent routes concurrently. Results keep request order.
// The first error cancels the remaining work.
func (p *RoutePlanner) PlanMany(ctx context.Context, reqs []PlanRouteRequest) ([]*domain.RoutePlan, error) {
	plans := make([]*domain.RoutePlan, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPlans)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			plan, err := p.Plan(gctx, req)
			if err != nil {
				return fmt.Errorf("plan many: route #%d: %w", i+1, err)
			}
			plans[i] = plan
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return plans, nil
}

// Optimize returns only the reordered route.
func (p *RoutePlanner) Optimize(locations []domain.Stop, params domain.OptimizationParams) []domain.Stop {
	return p.sequencer().OptimizeRoute(locations, params)
}

func (p *RoutePlanner) sequencer() *RouteSequencer {
	if p.Sequencer == nil {
		return NewRouteSequencer()
	}
	return p.Sequencer
}

// metricsFor aggregates locations and returns the load profile the
// capacity check was made against.
func (p *RoutePlanner) metricsFor(
	ctx context.Context,
	locations []domain.Stop,
	req PlanRouteRequest,
) (domain.RouteMetrics, domain.LoadProfile, error) {
	external := p.externalRouteData(ctx, locations, req.Params)

	m, err := p.Aggregator.Aggregate(locations, req.Params, req.FuelPricePerLiter, external)
	if err != nil {
		return domain.RouteMetrics{}, domain.LoadProfile{}, err
	}

	load := p.Aggregator.Loads().Simulate(locations)
	m.CapacityExceeded = load.ExceedsCapacity(req.Vehicle.Capacity())

	return m, load, nil
}

// externalRouteData consults the cache, then the provider. It returns nil
// whenever the local estimate should be used instead.
func (p *RoutePlanner) externalRouteData(
	ctx context.Context,
	locations []domain.Stop,
	params domain.OptimizationParams,
) *domain.ExternalRouteData {
	if p.Provider == nil || !params.UseRealTimeData || len(locations) < 2 {
		return nil
	}

	waypoints := make([]domain.Coordinates, 0, len(locations))
	for _, s := range locations {
		// Engines reject unknown points; estimate the whole route locally instead.
		if !s.HasValidLocation() {
			return nil
		}
		waypoints = append(waypoints, *s.Location)
	}

	key := RouteCacheKey(waypoints)

	if p.Cache != nil {
		cached, err := p.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("route cache read failed: key=%s err=%v", key, err)
		} else if cached != nil {
			return cached
		}
	}

	data, err := p.Provider.GetRouteData(ctx, waypoints)
	if err != nil {
		log.Printf("route data provider failed, using local estimates: stops=%d err=%v", len(locations), err)
		return nil
	}
	if data == nil || !(data.Distance > 0) {
		return nil
	}

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, key, data); err != nil {
			log.Printf("route cache write failed: key=%s err=%v", key, err)
		}
	}

	return data
}

// RouteCacheKey fingerprints an ordered waypoint list. Coordinates are
// rounded to 5 decimals (about 1 m) so equivalent routes share a key.
func RouteCacheKey(waypoints []domain.Coordinates) string {
	var b strings.Builder
	for _, w := range waypoints {
		b.WriteString(strconv.FormatFloat(w.Lat, 'f', 5, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(w.Lon, 'f', 5, 64))
		b.WriteByte(';')
	}
	return "route:" + strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}
