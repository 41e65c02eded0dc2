package services

import (
	"cylinder-route-service/internal/domain"
	"math"
)

// Score multipliers shared by every candidate in a selection step.
const (
	realTimeAvoidTrafficFactor = 0.7
	avoidTrafficFactor         = 0.85
	prioritizeFuelFactor       = 0.7
)

// LocationWeighting scales a candidate's distance score.
// Values below 1 make a stop more attractive.
type LocationWeighting func(stop domain.Stop, params domain.OptimizationParams) float64

// DefaultLocationWeighting favors stops with many empties to collect.
// With PrioritizeFuel set it also nudges higher-latitude stops later, which
// for a southern-hemisphere fleet means urban stops are visited first.
func DefaultLocationWeighting(stop domain.Stop, params domain.OptimizationParams) float64 {
	f := 1 - 0.05*float64(stop.Empty())
	f = math.Min(math.Max(f, 0.5), 1.5)

	if params.PrioritizeFuel && stop.Location != nil {
		f += math.Abs(stop.Location.Lat) / 90 * 0.1
	}
	return f
}

// RouteSequencer orders the middle stops of a route by repeated nearest
// weighted candidate selection.
//
// This is a greedy nearest-neighbor heuristic. It is deterministic and cheap,
// and it makes no claim to a globally optimal order.
type RouteSequencer struct {
	Weighting LocationWeighting
}

func NewRouteSequencer() *RouteSequencer {
	return &RouteSequencer{Weighting: DefaultLocationWeighting}
}

// Reorder returns the middle stops in visiting order. The result is always a
// permutation of middle. Start and end are never moved; end is accepted so
// alternative scorers can account for the closing leg.
//
// Candidates without valid coordinates are not scored. When no scorable
// candidate is left the remaining stops are appended in their given order.
func (s *RouteSequencer) Reorder(
	start domain.Stop,
	middle []domain.Stop,
	end domain.Stop,
	params domain.OptimizationParams,
) []domain.Stop {
	out := make([]domain.Stop, 0, len(middle))
	if len(middle) <= 1 {
		return append(out, middle...)
	}

	weighting := s.Weighting
	if weighting == nil {
		weighting = DefaultLocationWeighting
	}
	stepFactor := trafficFactor(params) * fuelFactor(params)

	unvisited := append([]domain.Stop(nil), middle...)
	current := start

	for len(unvisited) > 0 {
		if !current.HasValidLocation() {
			break
		}

		bestIdx := -1
		bestScore := math.Inf(1)

		// Select next stop by minimum weighted distance (greedy step).
		for i, c := range unvisited {
			if !c.HasValidLocation() {
				continue
			}

			score := EstimateBetween(*current.Location, *c.Location) * weighting(c, params) * stepFactor
			// Ties keep the earliest candidate so ordering stays deterministic.
			if score < bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			break
		}

		current = unvisited[bestIdx]
		out = append(out, current)
		unvisited = append(unvisited[:bestIdx], unvisited[bestIdx+1:]...)
	}

	// Unscorable stops are kept, never dropped.
	return append(out, unvisited...)
}

// OptimizeRoute reorders the middle of a full route, pinning its first and
// last stops. Routes with fewer than three stops are returned as a copy.
func (s *RouteSequencer) OptimizeRoute(locations []domain.Stop, params domain.OptimizationParams) []domain.Stop {
	if len(locations) < 3 {
		return append([]domain.Stop(nil), locations...)
	}

	start := locations[0]
	end := locations[len(locations)-1]
	middle := s.Reorder(start, locations[1:len(locations)-1], end, params)

	out := make([]domain.Stop, 0, len(locations))
	out = append(out, start)
	out = append(out, middle...)
	return append(out, end)
}

func trafficFactor(params domain.OptimizationParams) float64 {
	switch {
	case params.AvoidTraffic && params.UseRealTimeData:
		return realTimeAvoidTrafficFactor
	case params.AvoidTraffic:
		return avoidTrafficFactor
	default:
		return 1.0
	}
}

func fuelFactor(params domain.OptimizationParams) float64 {
	if params.PrioritizeFuel {
		return prioritizeFuelFactor
	}
	return 1.0
}
