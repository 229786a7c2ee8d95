package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics-route-service/internal/config"
	"logistics-route-service/internal/domain"
)

func solverPlanner() config.Planner {
	cfg := config.DefaultPlanner()
	cfg.SearchTimeBudget = 2 * time.Second
	return cfg
}

func solverInput(t *testing.T, cfg config.Planner, orders []*domain.Order) ([]Stop, CostMatrix) {
	t.Helper()

	stops := BuildStops(testWarehouse(), orders, cfg)
	locations := make([]domain.Location, len(stops))
	for i, s := range stops {
		locations[i] = s.Location
	}
	// A Monday keeps the congestion multiplier predictable.
	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	return stops, BuildCostMatrix(locations, date, cfg)
}

func TestSolveFindsClosedTour(t *testing.T) {
	cfg := solverPlanner()
	orders := []*domain.Order{
		testOrder(1, 55.7887, 37.7498, 100, 1.0, ""),
		testOrder(2, 55.7152, 37.5538, 150, 1.5, ""),
		testOrder(3, 55.7304, 37.6012, 80, 0.8, ""),
		testOrder(4, 55.7769, 37.5873, 120, 1.2, ""),
	}
	stops, m := solverInput(t, cfg, orders)
	vehicle := testVehicle(1000, 10)

	cand, err := Solve(context.Background(), stops, m, vehicle, cfg)
	require.NoError(t, err)

	// Closed tour: depot at both ends, every customer exactly once between.
	seq := cand.Sequence
	require.Len(t, seq, len(stops)+1)
	assert.Equal(t, 0, seq[0])
	assert.Equal(t, 0, seq[len(seq)-1])

	seen := map[int]bool{}
	for _, idx := range seq[1 : len(seq)-1] {
		assert.False(t, seen[idx], "stop %d visited twice", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, len(orders))

	assert.Greater(t, cand.TotalDistanceKm, 0.0)
	assert.Greater(t, cand.TotalTimeMin, 0.0)
	assert.LessOrEqual(t, cand.TotalTimeMin, float64(cfg.RouteDurationCeilingMin))
}

func TestSolveHonorsTightEarlyWindow(t *testing.T) {
	cfg := solverPlanner()

	// Customer 2's window closes at 10:00; the tour must still place it
	// early enough to be reachable.
	orders := []*domain.Order{
		testOrder(1, 55.7612, 37.6250, 10, 0.1, ""),
		testOrder(2, 55.7152, 37.5538, 10, 0.1, "09:00-10:00"),
	}
	stops, m := solverInput(t, cfg, orders)
	vehicle := testVehicle(1000, 10)

	cand, err := Solve(context.Background(), stops, m, vehicle, cfg)
	require.NoError(t, err)
	require.Len(t, cand.Sequence, 4)
	assert.True(t, feasibleTour(cand.Sequence, stops, m, vehicle, cfg))
}

func TestSolveDeterministic(t *testing.T) {
	cfg := solverPlanner()
	orders := []*domain.Order{
		testOrder(1, 55.7887, 37.7498, 10, 0.1, ""),
		testOrder(2, 55.7152, 37.5538, 10, 0.1, ""),
		testOrder(3, 55.7304, 37.6012, 10, 0.1, ""),
		testOrder(4, 55.7769, 37.5873, 10, 0.1, ""),
		testOrder(5, 55.7423, 37.6905, 10, 0.1, ""),
	}
	stops, m := solverInput(t, cfg, orders)
	vehicle := testVehicle(1000, 10)

	a, err := Solve(context.Background(), stops, m, vehicle, cfg)
	require.NoError(t, err)
	b, err := Solve(context.Background(), stops, m, vehicle, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Sequence, b.Sequence)
	assert.Equal(t, a.TotalDistanceKm, b.TotalDistanceKm)
}

func TestSolveAggregateOverCapacity(t *testing.T) {
	cfg := solverPlanner()
	orders := []*domain.Order{
		testOrder(1, 55.7887, 37.7498, 400, 1.0, ""),
		testOrder(2, 55.7152, 37.5538, 400, 1.0, ""),
		testOrder(3, 55.7304, 37.6012, 400, 1.0, ""),
	}
	stops, m := solverInput(t, cfg, orders)
	vehicle := testVehicle(1000, 10) // total demand 1200 kg

	_, err := Solve(context.Background(), stops, m, vehicle, cfg)
	require.ErrorIs(t, err, domain.ErrInfeasible)
}

func TestSolveSingleStopOverCapacity(t *testing.T) {
	cfg := solverPlanner()
	orders := []*domain.Order{
		testOrder(1, 55.7887, 37.7498, 50, 12.0, ""), // volume alone overflows
		testOrder(2, 55.7152, 37.5538, 50, 0.5, ""),
	}
	stops, m := solverInput(t, cfg, orders)
	vehicle := testVehicle(1000, 10)

	_, err := Solve(context.Background(), stops, m, vehicle, cfg)
	require.ErrorIs(t, err, domain.ErrInfeasible)
}

func TestSolveWindowClosedBeforeDeparture(t *testing.T) {
	cfg := solverPlanner()
	orders := []*domain.Order{
		testOrder(1, 55.7887, 37.7498, 10, 0.1, "06:00-07:00"),
	}
	stops, m := solverInput(t, cfg, orders)
	vehicle := testVehicle(1000, 10)

	_, err := Solve(context.Background(), stops, m, vehicle, cfg)
	require.ErrorIs(t, err, domain.ErrInfeasible)
}

func TestSolveExpiredBudgetStillReturnsFeasibleTour(t *testing.T) {
	cfg := solverPlanner()
	cfg.SearchTimeBudget = 0

	orders := []*domain.Order{
		testOrder(1, 55.7887, 37.7498, 10, 0.1, ""),
		testOrder(2, 55.7152, 37.5538, 10, 0.1, ""),
		testOrder(3, 55.7304, 37.6012, 10, 0.1, ""),
		testOrder(4, 55.7769, 37.5873, 10, 0.1, ""),
		testOrder(5, 55.7423, 37.6905, 10, 0.1, ""),
	}
	stops, m := solverInput(t, cfg, orders)
	vehicle := testVehicle(1000, 10)

	cand, err := Solve(context.Background(), stops, m, vehicle, cfg)
	require.NoError(t, err)

	seq := cand.Sequence
	require.Len(t, seq, len(stops)+1)
	assert.Equal(t, 0, seq[0])
	assert.Equal(t, 0, seq[len(seq)-1])
	seen := map[int]bool{}
	for _, idx := range seq[1 : len(seq)-1] {
		assert.False(t, seen[idx])
		seen[idx] = true
	}
	assert.Len(t, seen, len(orders))
	assert.True(t, feasibleTour(seq, stops, m, vehicle, cfg))
}

func TestSolveNoCustomerStops(t *testing.T) {
	cfg := solverPlanner()
	stops, m := solverInput(t, cfg, nil)
	vehicle := testVehicle(1000, 10)

	_, err := Solve(context.Background(), stops, m, vehicle, cfg)
	require.ErrorIs(t, err, domain.ErrInfeasible)
}

func TestFeasibleTourRespectsWaitSlack(t *testing.T) {
	cfg := solverPlanner()

	// One customer five minutes out whose window opens hours after any
	// tolerable wait.
	orders := []*domain.Order{
		testOrder(1, 55.7612, 37.6250, 10, 0.1, "13:00-14:00"),
	}
	stops, m := solverInput(t, cfg, orders)
	vehicle := testVehicle(1000, 10)

	assert.False(t, feasibleTour([]int{0, 1, 0}, stops, m, vehicle, cfg))

	// Shrinking the gap to within the slack makes the same tour feasible.
	stops[1].Window = Window{Start: cfg.DepartureHour*60 + 20, End: 1020}
	assert.True(t, feasibleTour([]int{0, 1, 0}, stops, m, vehicle, cfg))
}

func TestRelocateAt(t *testing.T) {
	tour := []int{0, 1, 2, 3, 0}

	assert.Equal(t, []int{0, 2, 1, 3, 0}, relocateAt(tour, 1, 2))
	assert.Equal(t, []int{0, 3, 1, 2, 0}, relocateAt(tour, 3, 1))
	assert.Equal(t, []int{0, 1, 2, 3, 0}, tour, "input must not be mutated")
}

func TestInsertAt(t *testing.T) {
	assert.Equal(t, []int{0, 5, 0}, insertAt([]int{0, 0}, 5, 1))
	assert.Equal(t, []int{0, 1, 5, 0}, insertAt([]int{0, 1, 0}, 5, 2))
}
