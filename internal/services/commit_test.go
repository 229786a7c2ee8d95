package services

import (
	"math"
	"strings"
	"testing"
	"time"

	"logistics-route-service/internal/config"
	"logistics-route-service/internal/domain"
)

func TestBuildRoute(t *testing.T) {
	cfg := config.DefaultPlanner()
	orders := []*domain.Order{
		testOrder(11, 55.7887, 37.7498, 100, 1.0, ""),
		testOrder(12, 55.7152, 37.5538, 150, 1.5, ""),
	}
	stops := BuildStops(testWarehouse(), orders, cfg)
	cand := &RouteCandidate{
		Sequence:        []int{0, 2, 1, 0},
		TotalDistanceKm: 21.5,
		TotalTimeMin:    60,
	}
	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	route, routeStops := BuildRoute(cand, stops, testWarehouse(), testVehicle(1000, 10), testDriver(), date, cfg)

	if !strings.HasPrefix(route.RouteID, "ROUTE-") {
		t.Fatalf("route id = %q, want ROUTE- prefix", route.RouteID)
	}
	if route.Status != domain.RoutePlanned {
		t.Fatalf("route status = %q, want %q", route.Status, domain.RoutePlanned)
	}
	if route.WarehouseID != 1 {
		t.Fatalf("warehouse id = %d, want 1", route.WarehouseID)
	}
	if route.VehicleID == nil || *route.VehicleID != 7 {
		t.Fatalf("vehicle id = %v, want 7", route.VehicleID)
	}
	if route.DriverID == nil || *route.DriverID != 3 {
		t.Fatalf("driver id = %v, want 3", route.DriverID)
	}
	if route.TotalDistanceKm != 21.5 || route.EstimatedDurationMin != 60 {
		t.Fatalf("totals = (%v km, %v min), want (21.5, 60)", route.TotalDistanceKm, route.EstimatedDurationMin)
	}
	if route.PathEncoding == "" {
		t.Fatal("path encoding is empty")
	}

	// Optimal distance is the unscaled straight-line length of the same
	// tour: depot -> stop 2 -> stop 1 -> depot.
	straight := stops[0].Location.DistanceKm(stops[2].Location) +
		stops[2].Location.DistanceKm(stops[1].Location) +
		stops[1].Location.DistanceKm(stops[0].Location)
	if math.Abs(route.OptimalDistanceKm-straight) > 0.01 {
		t.Fatalf("optimal distance = %v, want about %v", route.OptimalDistanceKm, straight)
	}

	if len(routeStops) != 2 {
		t.Fatalf("got %d stops, want 2", len(routeStops))
	}

	// Tour visits stop index 2 (order 12) first, then stop index 1 (order 11).
	if routeStops[0].OrderID != 12 || routeStops[1].OrderID != 11 {
		t.Fatalf("stop order ids = (%d, %d), want (12, 11)", routeStops[0].OrderID, routeStops[1].OrderID)
	}

	departure := time.Date(2026, time.March, 2, cfg.DepartureHour, 0, 0, 0, time.UTC)
	for i, s := range routeStops {
		if s.Sequence != i {
			t.Fatalf("stop %d sequence = %d", i, s.Sequence)
		}
		if s.DeliveryStatus != domain.OrderProcessing {
			t.Fatalf("stop %d status = %q, want %q", i, s.DeliveryStatus, domain.OrderProcessing)
		}
		if !s.EstimatedArrival.After(departure) {
			t.Fatalf("stop %d arrival %v not after departure %v", i, s.EstimatedArrival, departure)
		}
	}

	// Arrivals split route time proportionally: the return leg owns the
	// final third, so two stops land at +20 and +40 minutes.
	assertArrivalNear(t, routeStops[0].EstimatedArrival, departure.Add(20*time.Minute))
	assertArrivalNear(t, routeStops[1].EstimatedArrival, departure.Add(40*time.Minute))

	if !routeStops[0].EstimatedArrival.Before(routeStops[1].EstimatedArrival) {
		t.Fatal("arrivals are not strictly increasing")
	}
}

func assertArrivalNear(t *testing.T, got, want time.Time) {
	t.Helper()
	d := got.Sub(want)
	if d < 0 {
		d = -d
	}
	if d > time.Second {
		t.Fatalf("arrival = %v, want %v (±1s)", got, want)
	}
}

func TestBuildRouteSingleStop(t *testing.T) {
	cfg := config.DefaultPlanner()
	orders := []*domain.Order{testOrder(21, 55.7887, 37.7498, 50, 0.5, "")}
	stops := BuildStops(testWarehouse(), orders, cfg)
	cand := &RouteCandidate{Sequence: []int{0, 1, 0}, TotalDistanceKm: 10, TotalTimeMin: 30}
	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	_, routeStops := BuildRoute(cand, stops, testWarehouse(), testVehicle(1000, 10), testDriver(), date, cfg)

	if len(routeStops) != 1 {
		t.Fatalf("got %d stops, want 1", len(routeStops))
	}
	departure := time.Date(2026, time.March, 2, cfg.DepartureHour, 0, 0, 0, time.UTC)
	assertArrivalNear(t, routeStops[0].EstimatedArrival, departure.Add(15*time.Minute))
}
