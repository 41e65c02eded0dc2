package services

import "cylinder-route-service/internal/domain"

// LoadSimulator tracks full and empty cylinders as the vehicle visits stops.
type LoadSimulator struct {
	fullKg  float64
	emptyKg float64
}

func NewLoadSimulator(cfg ModelConfig) *LoadSimulator {
	return &LoadSimulator{
		fullKg:  max(cfg.FullCylinderWeightKg, 0),
		emptyKg: max(cfg.EmptyCylinderWeightKg, 0),
	}
}

// Simulate walks stops in order and returns the carried weight after each one.
//
// A depot at the start of the route sets the departing load; a depot later in
// the route adds its inventory as a refill. Customer and distribution stops
// receive at most what is on board and hand back their empties.
// The first stop (nothing travelled yet) and the last stop (already unloaded)
// are excluded from MaxWeight.
func (s *LoadSimulator) Simulate(stops []domain.Stop) domain.LoadProfile {
	profile := domain.LoadProfile{
		PerStopWeight: make([]float64, 0, len(stops)),
		PerStop:       make([]domain.StopLoad, 0, len(stops)),
	}
	if len(stops) == 0 {
		return profile
	}

	full, empty := 0, 0
	last := len(stops) - 1

	for i, stop := range stops {
		switch {
		case stop.Kind == domain.StopKindDepot:
			full += stop.Full()
		case stop.Kind.Delivers():
			// Never deliver more than is on board.
			full -= min(full, stop.Full())
			empty += stop.Empty()
		}

		w := s.weight(full, empty)
		profile.PerStopWeight = append(profile.PerStopWeight, w)
		profile.PerStop = append(profile.PerStop, domain.StopLoad{
			FullOnBoard:  full,
			EmptyOnBoard: empty,
			WeightKg:     w,
		})

		if i != 0 && i != last && w > profile.MaxWeight {
			profile.MaxWeight = w
		}
	}

	return profile
}

func (s *LoadSimulator) weight(full, empty int) float64 {
	return float64(full)*s.fullKg + float64(empty)*s.emptyKg
}
