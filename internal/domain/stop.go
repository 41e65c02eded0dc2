package domain

import (
	"fmt"
	"strings"
)

// StopKind tags what a stop does to the vehicle's load.
type StopKind string

const (
	// Depot is a source of full cylinders and a sink for empties.
	StopKindDepot StopKind = "Depot"
	// Customer consumes full cylinders and hands back empties.
	StopKindCustomer StopKind = "Customer"
	// Distribution points are weighed the same way as customers.
	StopKindDistribution StopKind = "Distribution"
)

// ParseStopKind accepts the canonical names case-insensitively.
func ParseStopKind(s string) (StopKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "depot":
		return StopKindDepot, nil
	case "customer":
		return StopKindCustomer, nil
	case "distribution":
		return StopKindDistribution, nil
	default:
		return "", fmt.Errorf("parse stop kind %q: %w", s, ErrInvalidParameter)
	}
}

// Delivers reports whether stops of this kind take full cylinders off the vehicle.
func (k StopKind) Delivers() bool {
	return k == StopKindCustomer || k == StopKindDistribution
}

// Stop is a point the vehicle visits.
//
// For a Depot, FullCylinders is the inventory available to load.
// For a Customer or Distribution stop, FullCylinders is the number to
// deliver and EmptyCylinders the number of empties to collect.
// Location is nil when the stop has not been geocoded.
type Stop struct {
	ID             string       `json:"id"`
	Name           string       `json:"name,omitempty"`
	Kind           StopKind     `json:"kind"`
	Location       *Coordinates `json:"location,omitempty"`
	FullCylinders  int          `json:"full_cylinders"`
	EmptyCylinders int          `json:"empty_cylinders"`
}

// HasValidLocation reports whether the stop can be placed on a map.
func (s Stop) HasValidLocation() bool {
	return s.Location != nil && s.Location.Valid()
}

// Full returns the full-cylinder count clamped to zero.
func (s Stop) Full() int { return max(s.FullCylinders, 0) }

// Empty returns the empty-cylinder count clamped to zero.
func (s Stop) Empty() int { return max(s.EmptyCylinders, 0) }
