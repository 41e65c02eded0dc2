package services

import (
	"cylinder-route-service/internal/domain"
	"math"
)

// FuelModel derives consumption from distance and carried weight.
type FuelModel struct {
	baseRate   float64
	loadFactor float64
}

func NewFuelModel(cfg ModelConfig) *FuelModel {
	return &FuelModel{
		baseRate:   max(cfg.BaseFuelConsumptionRate, 0),
		loadFactor: max(cfg.LoadFactor, 0),
	}
}

// Consumption returns liters burned over distanceKm while carrying weightKg.
// Invalid or non-positive weight falls back to the unweighted rate.
func (m *FuelModel) Consumption(distanceKm, weightKg float64) float64 {
	if !finite(distanceKm) || distanceKm <= 0 {
		return 0
	}

	penalty := 1.0
	if finite(weightKg) && weightKg > 0 {
		penalty += (weightKg / 100) * m.loadFactor
	}

	return distanceKm * m.baseRate * penalty / 100
}

// Cost prices liters at pricePerLiter. It does not round.
func (m *FuelModel) Cost(liters, pricePerLiter float64) (float64, error) {
	if err := ValidateFuelPrice(pricePerLiter); err != nil {
		return 0, err
	}
	if !finite(liters) || liters <= 0 {
		return 0, nil
	}
	return liters * pricePerLiter, nil
}

// ValidateFuelPrice fails fast on prices that would corrupt cost accounting.
func ValidateFuelPrice(pricePerLiter float64) error {
	if !finite(pricePerLiter) || pricePerLiter < 0 {
		return domain.ErrInvalidFuelPrice
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
