package dto

import "cylinder-route-service/internal/domain"

type CoordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// StopRequest is an inline stop. Coordinates are optional; stops without
// usable coordinates are estimated with default legs.
type StopRequest struct {
	ID             string              `json:"id" validate:"max=64"`
	Name           string              `json:"name" validate:"max=200"`
	Kind           string              `json:"kind" validate:"required,oneof=Depot Customer Distribution depot customer distribution"`
	Location       *CoordinatesRequest `json:"location"`
	FullCylinders  int                 `json:"full_cylinders"`
	EmptyCylinders int                 `json:"empty_cylinders"`
}

func (s StopRequest) ToDomain() (domain.Stop, error) {
	kind, err := domain.ParseStopKind(s.Kind)
	if err != nil {
		return domain.Stop{}, err
	}

	stop := domain.Stop{
		ID:             s.ID,
		Name:           s.Name,
		Kind:           kind,
		FullCylinders:  s.FullCylinders,
		EmptyCylinders: s.EmptyCylinders,
	}
	if s.Location != nil {
		stop.Location = &domain.Coordinates{Lat: s.Location.Lat, Lon: s.Location.Lon}
	}
	return stop, nil
}

type StopResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Lat            *float64 `json:"lat"`
	Lon            *float64 `json:"lon"`
	FullCylinders  int      `json:"full_cylinders"`
	EmptyCylinders int      `json:"empty_cylinders"`
}

func NewStopResponse(s domain.Stop) StopResponse {
	res := StopResponse{
		ID:             s.ID,
		Name:           s.Name,
		Kind:           string(s.Kind),
		FullCylinders:  s.FullCylinders,
		EmptyCylinders: s.EmptyCylinders,
	}
	if s.Location != nil {
		lat, lon := s.Location.Lat, s.Location.Lon
		res.Lat, res.Lon = &lat, &lon
	}
	return res
}

type ListStopsResponse struct {
	Stops []StopResponse `json:"stops"`
}
