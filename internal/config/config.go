package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Planner carries the tunables of the optimization pipeline. Every component
// receives it explicitly at construction; there are no package-level knobs.
type Planner struct {
	// Straight-line distances are scaled by this factor to approximate
	// road distances.
	RoadDistanceFactor float64

	// Free-flow vehicle speed before the congestion multiplier.
	BaseSpeedKmh float64

	// Hard wall-clock bound on the route search.
	SearchTimeBudget time.Duration

	// Maximum tour duration from depot departure to depot return.
	RouteDurationCeilingMin int

	// Maximum waiting permitted when arriving before a stop's window opens.
	WaitSlackMin int

	// Window applied to customers without a delivery preference,
	// in minutes from midnight.
	DefaultWindowStart int
	DefaultWindowEnd   int

	// Hour of day the vehicle leaves the depot.
	DepartureHour int
}

func DefaultPlanner() Planner {
	return Planner{
		RoadDistanceFactor:      1.3,
		BaseSpeedKmh:            40,
		SearchTimeBudget:        30 * time.Second,
		RouteDurationCeilingMin: 480,
		WaitSlackMin:            30,
		DefaultWindowStart:      9 * 60,
		DefaultWindowEnd:        17 * 60,
		DepartureHour:           9,
	}
}

// Config is the full service configuration assembled from the environment.
type Config struct {
	DatabaseURL   string
	Port          string
	SeedPath      string
	VehicleType   string
	OptimizeSpec  string // cron spec for the daily optimization pass
	ReconcileSpec string // cron spec for delivery reconciliation
	Planner       Planner
}

// Load reads configuration from the environment, falling back to defaults
// for everything except DATABASE_URL.
func Load() (Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return Config{}, fmt.Errorf("load config: DATABASE_URL is required")
	}

	p := DefaultPlanner()
	p.RoadDistanceFactor = getFloat("ROAD_DISTANCE_FACTOR", p.RoadDistanceFactor)
	p.BaseSpeedKmh = getFloat("BASE_SPEED_KMH", p.BaseSpeedKmh)
	p.RouteDurationCeilingMin = getInt("ROUTE_DURATION_CEILING_MIN", p.RouteDurationCeilingMin)
	p.WaitSlackMin = getInt("WAIT_SLACK_MIN", p.WaitSlackMin)
	p.DepartureHour = getInt("DEPARTURE_HOUR", p.DepartureHour)
	if v := getInt("SEARCH_TIME_BUDGET_SECONDS", 0); v > 0 {
		p.SearchTimeBudget = time.Duration(v) * time.Second
	}

	return Config{
		DatabaseURL:   databaseURL,
		Port:          Get("PORT", "8080"),
		SeedPath:      Get("SEED_PATH", "data/seeds/logistics.json"),
		VehicleType:   Get("VEHICLE_TYPE", "van"),
		OptimizeSpec:  Get("OPTIMIZE_CRON", "0 6 * * *"),
		ReconcileSpec: Get("RECONCILE_CRON", "*/15 * * * *"),
		Planner:       p,
	}, nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
