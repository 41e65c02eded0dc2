package config

import (
	"cylinder-route-service/internal/services"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds process settings. Values come from the environment (after an
// optional .env file) and an optional config file named by CONFIG_FILE.
type Config struct {
	Port string `mapstructure:"PORT"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	DBPath      string `mapstructure:"DB_PATH"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	SeedPath    string `mapstructure:"SEED_PATH"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RouteCacheTTL time.Duration `mapstructure:"ROUTE_CACHE_TTL"`

	ORSAPIKey       string        `mapstructure:"ORS_API_KEY"`
	ORSBaseURL      string        `mapstructure:"ORS_BASE_URL"`
	ORSMaxAttempts  int           `mapstructure:"ORS_MAX_ATTEMPTS"`
	ORSRetryBackoff time.Duration `mapstructure:"ORS_RETRY_BACKOFF"`

	FuelPricePerLiter       float64 `mapstructure:"FUEL_PRICE_PER_LITER"`
	MaintenanceCostPerKm    float64 `mapstructure:"MAINTENANCE_COST_PER_KM"`
	BaseFuelConsumptionRate float64 `mapstructure:"BASE_FUEL_CONSUMPTION_RATE"`
	LoadFactor              float64 `mapstructure:"LOAD_FACTOR"`
	FullCylinderWeightKg    float64 `mapstructure:"FULL_CYLINDER_WEIGHT_KG"`
	EmptyCylinderWeightKg   float64 `mapstructure:"EMPTY_CYLINDER_WEIGHT_KG"`
	DwellMinutes            float64 `mapstructure:"DWELL_MINUTES"`
	JitterMagnitude         float64 `mapstructure:"JITTER_MAGNITUDE"`
	JitterSeed              uint64  `mapstructure:"JITTER_SEED"`
}

var keys = []string{
	"PORT", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "SEED_PATH",
	"REDIS_ADDR", "ROUTE_CACHE_TTL", "ORS_API_KEY", "ORS_BASE_URL",
	"ORS_MAX_ATTEMPTS", "ORS_RETRY_BACKOFF",
	"FUEL_PRICE_PER_LITER", "MAINTENANCE_COST_PER_KM", "BASE_FUEL_CONSUMPTION_RATE",
	"LOAD_FACTOR", "FULL_CYLINDER_WEIGHT_KG", "EMPTY_CYLINDER_WEIGHT_KG",
	"DWELL_MINUTES", "JITTER_MAGNITUDE", "JITTER_SEED",
}

// Load reads .env (if present), then the environment and CONFIG_FILE.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper already knows about.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("load config: bind %s: %w", k, err)
		}
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: decode: %w", err)
	}

	if err := cfg.Model().Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.FuelPricePerLiter < 0 {
		return nil, fmt.Errorf("load config: FUEL_PRICE_PER_LITER must be non-negative")
	}
	if cfg.ORSMaxAttempts < 1 || cfg.ORSRetryBackoff <= 0 {
		return nil, fmt.Errorf("load config: ORS_MAX_ATTEMPTS and ORS_RETRY_BACKOFF must be positive")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	m := services.DefaultModelConfig()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "data/app.db")
	v.SetDefault("SEED_PATH", "data/seeds/stops.json")
	v.SetDefault("ROUTE_CACHE_TTL", 6*time.Hour)
	v.SetDefault("ORS_BASE_URL", "https://api.openrouteservice.org")
	v.SetDefault("ORS_MAX_ATTEMPTS", 4)
	v.SetDefault("ORS_RETRY_BACKOFF", 200*time.Millisecond)

	v.SetDefault("FUEL_PRICE_PER_LITER", 1.5)
	v.SetDefault("MAINTENANCE_COST_PER_KM", m.MaintenanceCostPerKm)
	v.SetDefault("BASE_FUEL_CONSUMPTION_RATE", m.BaseFuelConsumptionRate)
	v.SetDefault("LOAD_FACTOR", m.LoadFactor)
	v.SetDefault("FULL_CYLINDER_WEIGHT_KG", m.FullCylinderWeightKg)
	v.SetDefault("EMPTY_CYLINDER_WEIGHT_KG", m.EmptyCylinderWeightKg)
	v.SetDefault("DWELL_MINUTES", m.DwellMinutes)
	v.SetDefault("JITTER_MAGNITUDE", m.JitterMagnitude)
	v.SetDefault("JITTER_SEED", m.JitterSeed)
}

// Model converts the cost and weight settings into a services.ModelConfig.
// Speeds are not configurable and keep their defaults.
func (c *Config) Model() services.ModelConfig {
	m := services.DefaultModelConfig()
	m.FullCylinderWeightKg = c.FullCylinderWeightKg
	m.EmptyCylinderWeightKg = c.EmptyCylinderWeightKg
	m.BaseFuelConsumptionRate = c.BaseFuelConsumptionRate
	m.LoadFactor = c.LoadFactor
	m.MaintenanceCostPerKm = c.MaintenanceCostPerKm
	m.DwellMinutes = c.DwellMinutes
	m.JitterMagnitude = c.JitterMagnitude
	m.JitterSeed = c.JitterSeed
	return m
}
