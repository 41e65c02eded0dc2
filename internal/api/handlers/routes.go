package handlers

import (
	"context"
	"cylinder-route-service/internal/api/dto"
	"cylinder-route-service/internal/domain"
	"cylinder-route-service/internal/ports"
	"cylinder-route-service/internal/services"
	"fmt"
	"net/http"
)

type RouteHandler struct {
	Repo             ports.StopRepository
	Planner          *services.RoutePlanner
	DefaultFuelPrice float64
}

// Metrics plans a single route and returns its metrics.
func (h *RouteHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	svcReq, err := h.toPlanRequest(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "resolve route", err)
		return
	}

	plan, err := h.Planner.Plan(r.Context(), svcReq)
	if err != nil {
		writeServiceError(w, r, "plan route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRoutePlanResponse(plan))
}

// Batch plans several independent routes concurrently.
func (h *RouteHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BatchRouteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reqs := make([]services.PlanRouteRequest, 0, len(req.Routes))
	for i, route := range req.Routes {
		svcReq, err := h.toPlanRequest(r.Context(), route)
		if err != nil {
			writeServiceError(w, r, "resolve batch", fmt.Errorf("route #%d: %w", i+1, err))
			return
		}
		reqs = append(reqs, svcReq)
	}

	plans, err := h.Planner.PlanMany(r.Context(), reqs)
	if err != nil {
		writeServiceError(w, r, "plan batch", err)
		return
	}

	res := dto.BatchRoutePlanResponse{Plans: make([]dto.RoutePlanResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, dto.NewRoutePlanResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Optimize returns the reordered stops without computing metrics.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	stops, err := h.resolveStops(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "resolve route", err)
		return
	}

	ordered := h.Planner.Optimize(stops, req.Params.ToDomain())

	res := dto.OptimizeResponse{Locations: make([]dto.StopResponse, 0, len(ordered))}
	for _, s := range ordered {
		res.Locations = append(res.Locations, dto.NewStopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) toPlanRequest(ctx context.Context, req dto.RouteRequest) (services.PlanRouteRequest, error) {
	stops, err := h.resolveStops(ctx, req)
	if err != nil {
		return services.PlanRouteRequest{}, err
	}

	price := h.DefaultFuelPrice
	if req.FuelPricePerLiter != nil {
		price = *req.FuelPricePerLiter
	}

	var vehicle *domain.Vehicle
	if req.VehicleCapacityKg != nil {
		vehicle, err = domain.NewVehicle("request", *req.VehicleCapacityKg)
		if err != nil {
			return services.PlanRouteRequest{}, err
		}
	}

	return services.PlanRouteRequest{
		Locations:         stops,
		Params:            req.Params.ToDomain(),
		FuelPricePerLiter: price,
		Vehicle:           vehicle,
		Optimize:          req.Optimize,
	}, nil
}

func (h *RouteHandler) resolveStops(ctx context.Context, req dto.RouteRequest) ([]domain.Stop, error) {
	if len(req.StopIDs) > 0 {
		if h.Repo == nil {
			return nil, fmt.Errorf("stop_ids given but no stop repository configured: %w", domain.ErrInvalidParameter)
		}
		return h.Repo.GetStops(ctx, req.StopIDs)
	}

	stops := make([]domain.Stop, 0, len(req.Stops))
	for i, s := range req.Stops {
		stop, err := s.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("stop #%d: %w", i+1, err)
		}
		stops = append(stops, stop)
	}
	return stops, nil
}
