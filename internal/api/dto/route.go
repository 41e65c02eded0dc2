package dto

import "cylinder-route-service/internal/domain"

// Limits on request size; the sequencer is quadratic in stop count.
const (
	MaxStopsPerRoute  = 200
	MaxRoutesPerBatch = 20
)

type ParamsRequest struct {
	PrioritizeFuel      bool `json:"prioritize_fuel"`
	AvoidTraffic        bool `json:"avoid_traffic"`
	UseRealTimeData     bool `json:"use_real_time_data"`
	OptimizeForDistance bool `json:"optimize_for_distance"`
}

func (p ParamsRequest) ToDomain() domain.OptimizationParams {
	return domain.OptimizationParams{
		PrioritizeFuel:      p.PrioritizeFuel,
		AvoidTraffic:        p.AvoidTraffic,
		UseRealTimeData:     p.UseRealTimeData,
		OptimizeForDistance: p.OptimizeForDistance,
	}
}

// RouteRequest names a route either inline (stops) or by seeded ids
// (stop_ids). When both are given stop_ids wins.
type RouteRequest struct {
	Stops             []StopRequest `json:"stops" validate:"required_without=StopIDs,omitempty,max=200,dive"`
	StopIDs           []string      `json:"stop_ids" validate:"omitempty,max=200,dive,required,max=64"`
	Params            ParamsRequest `json:"params"`
	FuelPricePerLiter *float64      `json:"fuel_price_per_liter"`
	VehicleCapacityKg *float64      `json:"vehicle_capacity_kg" validate:"omitempty,gt=0"`
	Optimize          bool          `json:"optimize"`
}

type BatchRouteRequest struct {
	Routes []RouteRequest `json:"routes" validate:"required,min=1,max=20,dive"`
}

type RoutePlanResponse struct {
	Locations   []StopResponse      `json:"locations"`
	Metrics     domain.RouteMetrics `json:"metrics"`
	LoadProfile domain.LoadProfile  `json:"load_profile"`
	Optimized   bool                `json:"optimized"`
	Savings     *domain.Savings     `json:"savings,omitempty"`
}

func NewRoutePlanResponse(p *domain.RoutePlan) RoutePlanResponse {
	res := RoutePlanResponse{
		Locations:   make([]StopResponse, 0, len(p.Locations)),
		Metrics:     p.Metrics,
		LoadProfile: p.Load,
		Optimized:   p.Optimized,
		Savings:     p.Savings,
	}
	for _, s := range p.Locations {
		res.Locations = append(res.Locations, NewStopResponse(s))
	}
	return res
}

type BatchRoutePlanResponse struct {
	Plans []RoutePlanResponse `json:"plans"`
}

type OptimizeResponse struct {
	Locations []StopResponse `json:"locations"`
}
