package domain

import (
	"fmt"
	"math"
)

// Delivery vehicle carrying cylinders between depots and customers.
// A zero CapacityKg means the capacity is unknown and never exceeded.
type Vehicle struct {
	VehicleID  string
	CapacityKg float64
}

func NewVehicle(id string, capacityKg float64) (*Vehicle, error) {
	if math.IsNaN(capacityKg) || capacityKg < 0 {
		return nil, fmt.Errorf("new vehicle %q: capacity %v: %w", id, capacityKg, ErrInvalidParameter)
	}
	return &Vehicle{VehicleID: id, CapacityKg: capacityKg}, nil
}

// Capacity returns the capacity in kg, or 0 (unknown) for a nil vehicle.
func (v *Vehicle) Capacity() float64 {
	if v == nil {
		return 0
	}
	return v.CapacityKg
}
