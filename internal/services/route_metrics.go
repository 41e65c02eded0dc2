package services

import (
	"cylinder-route-service/internal/domain"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

const (
	minDistanceKm     = 0.1
	minMinutesPerStop = 15.0
	minDurationMin    = 1.0

	optimizedDistanceFactor   = 0.9
	unoptimizedDistanceFactor = 1.05
	prioritizeFuelSaving      = 0.9
)

// Plausible per-leg defaults used when a leg has an endpoint without valid
// coordinates. Indexed by leg number modulo the table length so totals stay
// stable between recomputations.
var fallbackSegments = []domain.Segment{
	{Distance: 5.2, Duration: 12},
	{Distance: 3.8, Duration: 9},
	{Distance: 7.1, Duration: 16},
	{Distance: 4.5, Duration: 11},
	{Distance: 6.3, Duration: 14},
}

// FallbackSegment returns the default travel leg for leg index i.
func FallbackSegment(i int) domain.Segment {
	if i < 0 {
		i = -i
	}
	return fallbackSegments[i%len(fallbackSegments)]
}

// RouteMetricsAggregator computes distance, duration, load, fuel and cost
// metrics for an ordered stop list. It holds only immutable configuration and
// is safe for concurrent use.
type RouteMetricsAggregator struct {
	cfg   ModelConfig
	loads *LoadSimulator
	fuel  *FuelModel

	// Now supplies the evaluation time for traffic classification.
	Now func() time.Time
}

func NewRouteMetricsAggregator(cfg ModelConfig) (*RouteMetricsAggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new route metrics aggregator: %w", err)
	}

	return &RouteMetricsAggregator{
		cfg:   cfg,
		loads: NewLoadSimulator(cfg),
		fuel:  NewFuelModel(cfg),
		Now:   time.Now,
	}, nil
}

// Loads exposes the simulator the aggregator weighs routes with.
func (a *RouteMetricsAggregator) Loads() *LoadSimulator { return a.loads }

// Aggregate computes RouteMetrics for locations.
//
// When external carries a positive distance its distance, duration and
// segments are used as-is; otherwise every leg is estimated locally.
// The only error is an invalid fuel price.
func (a *RouteMetricsAggregator) Aggregate(
	locations []domain.Stop,
	params domain.OptimizationParams,
	fuelPricePerLiter float64,
	external *domain.ExternalRouteData,
) (domain.RouteMetrics, error) {
	if err := ValidateFuelPrice(fuelPricePerLiter); err != nil {
		return domain.RouteMetrics{}, fmt.Errorf("aggregate route metrics: %w", err)
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	band := ClassifyTraffic(now())

	var (
		distance, duration float64
		segments           []domain.Segment
		usingExternal      bool
	)

	if external != nil && finite(external.Distance) && external.Distance > 0 {
		usingExternal = true
		distance = external.Distance
		duration = nonNegative(external.Duration)
		segments = a.externalSegments(external.WaypointData, len(locations))
		if external.TrafficConditions.Valid() {
			band = external.TrafficConditions
		}
	} else {
		distance, duration, segments = a.estimateLegs(locations)
	}

	if params.OptimizeForDistance {
		distance *= optimizedDistanceFactor
	} else {
		distance *= unoptimizedDistanceFactor
	}

	if params.UseRealTimeData && !usingExternal {
		duration *= TrafficMultiplier(band)
	}

	distance = max(distance, minDistanceKm)
	duration = max(duration, float64(len(locations))*minMinutesPerStop, minDurationMin)

	weight := a.loads.Simulate(locations).MaxWeight

	consumption := a.fuel.Consumption(distance, weight)
	if params.PrioritizeFuel {
		consumption *= prioritizeFuelSaving
	}

	fuelCost, err := a.fuel.Cost(consumption, fuelPricePerLiter)
	if err != nil {
		return domain.RouteMetrics{}, fmt.Errorf("aggregate route metrics: %w", err)
	}
	maintenance := distance * a.cfg.MaintenanceCostPerKm

	rounded := make([]domain.Segment, len(segments))
	for i, s := range segments {
		rounded[i] = domain.Segment{Distance: round2(s.Distance), Duration: round2(s.Duration)}
	}

	return domain.RouteMetrics{
		Distance:          round2(distance),
		Duration:          round2(duration),
		FuelConsumption:   round2(consumption),
		FuelCost:          round2(fuelCost),
		MaintenanceCost:   round2(maintenance),
		TotalCost:         round2(fuelCost + maintenance),
		TrafficConditions: band,
		TotalWeight:       round2(weight),
		WaypointData:      rounded,
		UsingRealTimeData: usingExternal,
	}, nil
}

// estimateLegs sums locally estimated legs left to right. The first stop
// gets a zero segment.
func (a *RouteMetricsAggregator) estimateLegs(locations []domain.Stop) (float64, float64, []domain.Segment) {
	if len(locations) == 0 {
		return 0, 0, []domain.Segment{}
	}

	segments := make([]domain.Segment, 0, len(locations))
	segments = append(segments, domain.Segment{})

	var distance, duration float64
	for i := 1; i < len(locations); i++ {
		leg := i - 1
		from, to := locations[i-1], locations[i]

		var seg domain.Segment
		if from.HasValidLocation() && to.HasValidLocation() {
			d := EstimateBetween(*from.Location, *to.Location)
			d *= 1 + a.cfg.JitterMagnitude*jitter(a.cfg.JitterSeed, leg)
			seg = domain.Segment{Distance: d, Duration: d / a.legSpeed(leg) * 60}
		} else {
			seg = FallbackSegment(leg)
		}
		seg.Duration += a.cfg.DwellMinutes

		segments = append(segments, seg)
		distance += seg.Distance
		duration += seg.Duration
	}

	return distance, duration, segments
}

// legSpeed alternates urban and rural average speeds by leg index.
func (a *RouteMetricsAggregator) legSpeed(leg int) float64 {
	if leg%2 == 0 {
		return a.cfg.UrbanSpeedKmh
	}
	return a.cfg.RuralSpeedKmh
}

// externalSegments aligns engine legs with the stop list by prepending the
// zero segment of the first stop when the engine only reports legs.
// Negative or non-finite leg values are clamped to zero.
func (a *RouteMetricsAggregator) externalSegments(legs []domain.Segment, stops int) []domain.Segment {
	out := make([]domain.Segment, 0, len(legs)+1)
	if stops > 0 && len(legs) == stops-1 {
		out = append(out, domain.Segment{})
	}
	for _, l := range legs {
		out = append(out, domain.Segment{
			Distance: nonNegative(l.Distance),
			Duration: nonNegative(l.Duration),
		})
	}
	return out
}

func nonNegative(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}

// jitter returns a deterministic value in [-1, 1) for a seed and leg.
func jitter(seed uint64, leg int) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(leg))

	h := xxhash.Sum64(buf[:])
	u := float64(h>>11) / float64(uint64(1)<<53)
	return 2*u - 1
}

func round2(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Compare returns how much cheaper optimized is than original.
func Compare(original, optimized domain.RouteMetrics) domain.Savings {
	return domain.Savings{
		Distance:  round2(original.Distance - optimized.Distance),
		Duration:  round2(original.Duration - optimized.Duration),
		TotalCost: round2(original.TotalCost - optimized.TotalCost),
	}
}
