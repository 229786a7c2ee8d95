package services

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/twpayne/go-polyline"

	"logistics-route-service/internal/config"
	"logistics-route-service/internal/domain"
)

// BuildRoute converts a feasible candidate into the persistable route and
// its stop rows. The trailing return-to-depot node produces no stop.
//
// Sequence numbers are the 0-based tour positions. Estimated arrival for
// stop i is the departure time plus the (i+1)/(N+1) share of total route
// time: the proportional approximation carried over from the planning
// model, with the return leg holding the final share. Every stop starts at
// processing; route status starts at planned.
func BuildRoute(
	cand *RouteCandidate,
	stops []Stop,
	warehouse *domain.Warehouse,
	vehicle *domain.Vehicle,
	driver *domain.Driver,
	date time.Time,
	cfg config.Planner,
) (*domain.DeliveryRoute, []*domain.RouteStop) {
	start := time.Date(date.Year(), date.Month(), date.Day(), cfg.DepartureHour, 0, 0, 0, date.Location())

	coords := make([][]float64, 0, len(cand.Sequence))
	for _, idx := range cand.Sequence {
		coords = append(coords, []float64{stops[idx].Location.Lat, stops[idx].Location.Lon})
	}

	// Straight-line distance along the same tour, without the road factor.
	// The efficiency score compares the driven distance against it.
	var optimal float64
	for k := 1; k < len(cand.Sequence); k++ {
		optimal += stops[cand.Sequence[k-1]].Location.DistanceKm(stops[cand.Sequence[k]].Location)
	}

	vehicleID := vehicle.ID
	driverID := driver.ID
	route := &domain.DeliveryRoute{
		RouteID:              "ROUTE-" + uuid.NewString(),
		WarehouseID:          warehouse.ID,
		VehicleID:            &vehicleID,
		DriverID:             &driverID,
		PlannedDate:          date,
		Status:               domain.RoutePlanned,
		TotalDistanceKm:      cand.TotalDistanceKm,
		OptimalDistanceKm:    math.Round(optimal*100) / 100,
		EstimatedDurationMin: cand.TotalTimeMin,
		PathEncoding:         string(polyline.EncodeCoords(coords)),
	}

	customers := cand.Sequence[1 : len(cand.Sequence)-1]
	routeStops := make([]*domain.RouteStop, 0, len(customers))
	for i, idx := range customers {
		share := float64(i+1) / float64(len(customers)+1)
		arrival := start.Add(time.Duration(share * cand.TotalTimeMin * float64(time.Minute)))

		routeStops = append(routeStops, &domain.RouteStop{
			OrderID:          stops[idx].Order.ID,
			Sequence:         i,
			EstimatedArrival: arrival,
			DeliveryStatus:   domain.OrderProcessing,
		})
	}

	return route, routeStops
}
