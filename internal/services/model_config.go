package services

import (
	"cylinder-route-service/internal/domain"
	"fmt"
	"math"
)

// ModelConfig holds the constants of the load, fuel and duration models.
// It is passed by value into each component and never mutated after construction.
type ModelConfig struct {
	FullCylinderWeightKg  float64
	EmptyCylinderWeightKg float64

	// Liters per 100 km with an empty vehicle.
	BaseFuelConsumptionRate float64
	// Fractional consumption increase per 100 kg carried.
	LoadFactor           float64
	MaintenanceCostPerKm float64

	UrbanSpeedKmh float64
	RuralSpeedKmh float64
	DwellMinutes  float64

	// Relative per-segment distance noise; 0 disables it.
	JitterMagnitude float64
	JitterSeed      uint64
}

func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		FullCylinderWeightKg:    9,
		EmptyCylinderWeightKg:   12,
		BaseFuelConsumptionRate: 12,
		LoadFactor:              0.02,
		MaintenanceCostPerKm:    0.15,
		UrbanSpeedKmh:           35,
		RuralSpeedKmh:           60,
		DwellMinutes:            15,
	}
}

// Validate rejects configurations that would produce negative or undefined outputs.
func (c ModelConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"full cylinder weight", c.FullCylinderWeightKg},
		{"empty cylinder weight", c.EmptyCylinderWeightKg},
		{"base fuel consumption rate", c.BaseFuelConsumptionRate},
		{"load factor", c.LoadFactor},
		{"maintenance cost per km", c.MaintenanceCostPerKm},
		{"dwell minutes", c.DwellMinutes},
		{"jitter magnitude", c.JitterMagnitude},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("model config: %s = %v: %w", f.name, f.value, domain.ErrInvalidParameter)
		}
	}

	if !(c.UrbanSpeedKmh > 0) || !(c.RuralSpeedKmh > 0) {
		return fmt.Errorf("model config: speeds must be positive: %w", domain.ErrInvalidParameter)
	}
	if c.JitterMagnitude >= 1 {
		return fmt.Errorf("model config: jitter magnitude %v must be below 1: %w", c.JitterMagnitude, domain.ErrInvalidParameter)
	}

	return nil
}
