package main

import (
	"context"
	"cylinder-route-service/internal/adapters/cache"
	"cylinder-route-service/internal/adapters/repositories"
	"cylinder-route-service/internal/adapters/routing"
	"cylinder-route-service/internal/api"
	"cylinder-route-service/internal/config"
	"cylinder-route-service/internal/platform/db"
	"cylinder-route-service/internal/ports"
	"cylinder-route-service/internal/services"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	repo, sqlDB, closeRepo, err := openStopRepository(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeRepo()

	routeCache, closeCache := openRouteCache(ctx, cfg, sqlDB)
	defer closeCache()

	var provider ports.RouteDataProvider
	if strings.TrimSpace(cfg.ORSAPIKey) != "" {
		p, err := routing.NewORSRouteProvider(cfg.ORSAPIKey, cfg.ORSBaseURL)
		if err != nil {
			log.Fatal(err)
		}
		provider = p.WithRetryPolicy(routing.RetryPolicy{
			MaxAttempts: cfg.ORSMaxAttempts,
			BaseBackoff: cfg.ORSRetryBackoff,
		})
	} else {
		log.Println("ORS_API_KEY not set, route metrics use local estimates only")
	}

	aggregator, err := services.NewRouteMetricsAggregator(cfg.Model())
	if err != nil {
		log.Fatal(err)
	}
	planner := services.NewRoutePlanner(aggregator, services.NewRouteSequencer(), provider, routeCache)

	router := api.NewRouter(repo, planner, cfg.FuelPricePerLiter)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s driver=%s", cfg.Port, db.NormalizeDriver(cfg.DBDriver))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStopRepository returns the stop repository for the configured driver.
// The *sql.DB is only non-nil for SQLite, where it also backs the route cache.
func openStopRepository(ctx context.Context, cfg *config.Config) (ports.StopRepository, *sql.DB, func(), error) {
	switch db.NormalizeDriver(cfg.DBDriver) {
	case db.DriverPostgres:
		pool, err := db.OpenPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return repositories.NewPostgresStopRepository(pool), nil, pool.Close, nil

	case db.DriverSQLite:
		conn, err := db.Open(db.DriverSQLite, cfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}

		// Initialize schema and seed demo data on startup for local runs.
		if err := initAndSeed(conn, cfg.SeedPath); err != nil {
			_ = conn.Close()
			return nil, nil, nil, err
		}
		return repositories.NewSqliteStopRepository(conn), conn, func() { _ = conn.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// openRouteCache prefers Redis, then the SQLite database, then no cache.
func openRouteCache(ctx context.Context, cfg *config.Config, sqlDB *sql.DB) (ports.RouteCache, func()) {
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, falling back: addr=%s err=%v", addr, err)
			_ = client.Close()
		} else {
			return cache.NewRedisRouteCache(client, cfg.RouteCacheTTL), func() { _ = client.Close() }
		}
	}

	if sqlDB != nil {
		return cache.NewSqliteRouteCache(sqlDB, cfg.RouteCacheTTL), func() {}
	}

	return nil, func() {}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(conn, db.DriverSQLite, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
