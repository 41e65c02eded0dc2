package domain

// TrafficBand is the coarse congestion level for a point in time.
type TrafficBand string

const (
	TrafficLight    TrafficBand = "light"
	TrafficModerate TrafficBand = "moderate"
	TrafficHeavy    TrafficBand = "heavy"
)

// Valid reports whether b is one of the known bands.
func (b TrafficBand) Valid() bool {
	switch b {
	case TrafficLight, TrafficModerate, TrafficHeavy:
		return true
	}
	return false
}

// Segment is the directed leg arriving at a stop.
// Distance is in kilometers, Duration in minutes.
type Segment struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

// OptimizationParams toggles the planning heuristics.
type OptimizationParams struct {
	// Weight scores toward fuel efficiency.
	PrioritizeFuel bool `json:"prioritize_fuel"`
	// Discount scores during congestion.
	AvoidTraffic bool `json:"avoid_traffic"`
	// Apply the time-of-day traffic multiplier to duration.
	UseRealTimeData bool `json:"use_real_time_data"`
	// Apply the planning-gain distance multiplier.
	OptimizeForDistance bool `json:"optimize_for_distance"`
}

// ExternalRouteData is what a routing engine returns for a waypoint list.
// It has the same shape as the locally estimated metrics.
type ExternalRouteData struct {
	Distance          float64     `json:"distance"`
	Duration          float64     `json:"duration"`
	WaypointData      []Segment   `json:"waypoint_data"`
	TrafficConditions TrafficBand `json:"traffic_conditions,omitempty"`
}

// RouteMetrics is the aggregate output for one ordered stop list.
// Monetary and physical values are rounded to two decimals.
type RouteMetrics struct {
	Distance          float64     `json:"distance"`
	Duration          float64     `json:"duration"`
	FuelConsumption   float64     `json:"fuel_consumption"`
	FuelCost          float64     `json:"fuel_cost"`
	MaintenanceCost   float64     `json:"maintenance_cost"`
	TotalCost         float64     `json:"total_cost"`
	TrafficConditions TrafficBand `json:"traffic_conditions"`
	TotalWeight       float64     `json:"total_weight"`
	WaypointData      []Segment   `json:"waypoint_data"`
	UsingRealTimeData bool        `json:"using_real_time_data"`
	CapacityExceeded  bool        `json:"capacity_exceeded"`
}

// Savings compares an optimized route against the order the caller supplied.
// Positive values mean the optimized route is cheaper.
type Savings struct {
	Distance  float64 `json:"distance"`
	Duration  float64 `json:"duration"`
	TotalCost float64 `json:"total_cost"`
}

// RoutePlan is the planned stop order together with its metrics.
// It is immutable planning data; persisting it is the caller's job.
type RoutePlan struct {
	Locations []Stop       `json:"locations"`
	Metrics   RouteMetrics `json:"metrics"`
	Load      LoadProfile  `json:"load_profile"`
	Optimized bool         `json:"optimized"`
	Savings   *Savings     `json:"savings,omitempty"`
}
