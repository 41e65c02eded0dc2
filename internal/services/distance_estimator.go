package services

import (
	"cylinder-route-service/internal/domain"
	"math"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// Road correction factors by straight-line distance bracket.
const (
	HighwayFactor  = 1.1
	RuralFactor    = 1.15
	SuburbanFactor = 1.3
	UrbanFactor    = 1.4
)

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(min(h, 1)))
}

// RoadFactor returns the multiplier that turns a straight-line distance
// into a road-like one. Longer hops are assumed to use faster, straighter roads.
func RoadFactor(directKm float64) float64 {
	switch {
	case directKm > 20:
		return HighwayFactor
	case directKm >= 10:
		return RuralFactor
	case directKm >= 5:
		return SuburbanFactor
	default:
		return UrbanFactor
	}
}

// EstimateDistanceKm converts two coordinate pairs into a road distance estimate.
//
// The result is symmetric in its endpoints. Callers must check coordinate
// validity first; this function does not substitute fallbacks.
func EstimateDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	direct := HaversineKm(lat1, lon1, lat2, lon2)
	return direct * RoadFactor(direct)
}

// EstimateBetween is EstimateDistanceKm for domain coordinates.
func EstimateBetween(a, b domain.Coordinates) float64 {
	return EstimateDistanceKm(a.Lat, a.Lon, b.Lat, b.Lon)
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
