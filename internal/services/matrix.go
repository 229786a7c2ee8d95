package services

import (
	"time"

	"logistics-route-service/internal/config"
	"logistics-route-service/internal/domain"
)

// CostMatrix is the square travel-cost model over the stops of one
// optimization run, indexed by stop position (0 = depot). Distances in
// kilometers, times in minutes.
type CostMatrix struct {
	DistanceKm [][]float64
	TimeMin    [][]float64
}

// BuildCostMatrix computes pairwise costs for the given locations.
//
// Distance is the great-circle distance scaled by the road-distance factor.
// Time converts distance through a single effective speed derived once per
// call from the date's weekday and the fixed departure hour; the multiplier
// is applied uniformly across the matrix, not per arc.
func BuildCostMatrix(locations []domain.Location, date time.Time, cfg config.Planner) CostMatrix {
	n := len(locations)
	speed := cfg.BaseSpeedKmh * speedMultiplier(date.Weekday(), cfg.DepartureHour)

	dist := make([][]float64, n)
	tmin := make([][]float64, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]float64, n)
		tmin[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := locations[i].DistanceKm(locations[j]) * cfg.RoadDistanceFactor
			dist[i][j] = d
			tmin[i][j] = d / speed * 60
		}
	}

	return CostMatrix{DistanceKm: dist, TimeMin: tmin}
}

// speedMultiplier maps (weekday, hour) to a congestion factor. Weekend
// values replace the weekday buckets rather than compounding them.
func speedMultiplier(day time.Weekday, hour int) float64 {
	if day == time.Saturday || day == time.Sunday {
		if hour >= 11 && hour < 15 {
			return 0.9
		}
		return 1.1
	}

	switch {
	case hour >= 7 && hour < 10:
		return 0.7
	case hour >= 16 && hour < 19:
		return 0.6
	default:
		return 1.0
	}
}
