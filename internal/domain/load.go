package domain

// StopLoad is what the vehicle carries when it leaves a stop.
type StopLoad struct {
	FullOnBoard  int     `json:"full_on_board"`
	EmptyOnBoard int     `json:"empty_on_board"`
	WeightKg     float64 `json:"weight_kg"`
}

// LoadProfile is the carried load along an ordered stop list.
type LoadProfile struct {
	// Peak weight over the intermediate stops.
	MaxWeight     float64    `json:"max_weight"`
	PerStopWeight []float64  `json:"per_stop_weight"`
	PerStop       []StopLoad `json:"per_stop"`
}

// ExceedsCapacity reports whether the peak load is over capacityKg.
// A non-positive capacity is treated as unknown.
func (p LoadProfile) ExceedsCapacity(capacityKg float64) bool {
	return capacityKg > 0 && p.MaxWeight > capacityKg
}
