package api

import (
	"cylinder-route-service/internal/api/handlers"
	"cylinder-route-service/internal/ports"
	"cylinder-route-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.StopRepository, planner *services.RoutePlanner, defaultFuelPrice float64) http.Handler {
	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{Repo: repo}
	routeHandler := &handlers.RouteHandler{
		Repo:             repo,
		Planner:          planner,
		DefaultFuelPrice: defaultFuelPrice,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stops", stopHandler.List)
	mux.HandleFunc("/routes/metrics", routeHandler.Metrics)
	mux.HandleFunc("/routes/metrics/batch", routeHandler.Batch)
	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)

	return requestIDMiddleware(loggingMiddleware(mux))
}
