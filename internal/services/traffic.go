package services

import (
	"cylinder-route-service/internal/domain"
	"time"
)

// Duration multipliers applied per traffic band on the local estimate path.
const (
	HeavyTrafficMultiplier    = 1.2
	ModerateTrafficMultiplier = 1.0
	LightTrafficMultiplier    = 0.85
)

// ClassifyTraffic maps a wall-clock time to a traffic band.
//
// Weekdays: 07-09h and 16-18h are heavy, 10-15h and 19-20h moderate.
// Weekends: 09-17h moderate. Everything else is light.
// Hour ranges are inclusive and evaluated in t's own location.
func ClassifyTraffic(t time.Time) domain.TrafficBand {
	h := t.Hour()

	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		if h >= 9 && h <= 17 {
			return domain.TrafficModerate
		}
		return domain.TrafficLight
	}

	switch {
	case (h >= 7 && h <= 9) || (h >= 16 && h <= 18):
		return domain.TrafficHeavy
	case (h >= 10 && h <= 15) || (h >= 19 && h <= 20):
		return domain.TrafficModerate
	default:
		return domain.TrafficLight
	}
}

// TrafficMultiplier returns the duration scale for a band.
// Unknown bands are treated as moderate.
func TrafficMultiplier(b domain.TrafficBand) float64 {
	switch b {
	case domain.TrafficHeavy:
		return HeavyTrafficMultiplier
	case domain.TrafficLight:
		return LightTrafficMultiplier
	default:
		return ModerateTrafficMultiplier
	}
}
