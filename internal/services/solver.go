package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"logistics-route-service/internal/config"
	"logistics-route-service/internal/domain"
)

// RouteCandidate is the transient solver output: stop indices of a closed
// tour (first and last entry are the depot) with travel-only totals. It
// lives only for the duration of one optimization call.
type RouteCandidate struct {
	Sequence        []int
	TotalDistanceKm float64
	TotalTimeMin    float64
}

// Solve searches for a minimal-travel-time closed tour over the given stops
// subject to time windows, the route-duration ceiling and the vehicle's
// weight and volume capacities.
//
// The initial tour comes from cheapest feasible insertion; a local search
// over relocate, swap and 2-opt moves then improves it until convergence or
// the configured wall-clock budget, whichever comes first. Only strict
// improvements are accepted and neighborhoods are scanned in a fixed order,
// so among equal-cost tours the first one found wins and results are
// reproducible for a given input.
//
// Returns domain.ErrInfeasible when no permutation satisfies every
// constraint. An empty order set is the caller's concern: it is reported as
// domain.ErrNoWork before Solve runs at all.
func Solve(ctx context.Context, stops []Stop, m CostMatrix, vehicle *domain.Vehicle, cfg config.Planner) (*RouteCandidate, error) {
	n := len(stops)
	if n <= 1 {
		return nil, fmt.Errorf("solve route: no customer stops: %w", domain.ErrInfeasible)
	}

	// A single stop exceeding capacity, or the aggregate doing so, can
	// never be routed by one vehicle.
	var totalWeight, totalVolume float64
	for i := 1; i < n; i++ {
		if !vehicle.CanCarry(stops[i].Weight, stops[i].Volume) {
			return nil, fmt.Errorf(
				"solve route: stop %d demand exceeds vehicle capacity: %w",
				i, domain.ErrInfeasible,
			)
		}
		totalWeight += stops[i].Weight
		totalVolume += stops[i].Volume
	}
	if !vehicle.CanCarry(totalWeight, totalVolume) {
		return nil, fmt.Errorf(
			"solve route: total demand exceeds vehicle capacity: %w",
			domain.ErrInfeasible,
		)
	}

	deadline := time.Now().Add(cfg.SearchTimeBudget)

	tour, err := buildInitialTour(stops, m, vehicle, cfg, deadline)
	if err != nil {
		return nil, err
	}

	tour = improveTour(ctx, tour, stops, m, vehicle, cfg, deadline)

	dist, tmin := tourTotals(tour, m)
	return &RouteCandidate{
		Sequence:        tour,
		TotalDistanceKm: math.Round(dist*100) / 100,
		TotalTimeMin:    math.Round(tmin*100) / 100,
	}, nil
}

// buildInitialTour constructs a feasible tour by cheapest insertion: at each
// step the (stop, position) pair with the smallest travel-time increase over
// all feasible insertions wins. Ties resolve to the lower stop index, then
// the earlier position. Past the deadline each step keeps the first feasible
// insertion found instead of the cheapest, so construction still terminates
// with a valid tour inside the budget.
func buildInitialTour(stops []Stop, m CostMatrix, vehicle *domain.Vehicle, cfg config.Planner, deadline time.Time) ([]int, error) {
	tour := []int{0, 0}

	remaining := make([]int, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		remaining = append(remaining, i)
	}

	for len(remaining) > 0 {
		bestDelta := math.Inf(1)
		bestStop := -1
		bestPos := -1
		expired := !time.Now().Before(deadline)

	scan:
		for _, s := range remaining {
			for pos := 1; pos < len(tour); pos++ {
				delta := m.TimeMin[tour[pos-1]][s] + m.TimeMin[s][tour[pos]] - m.TimeMin[tour[pos-1]][tour[pos]]
				if delta >= bestDelta {
					continue
				}
				if !feasibleTour(insertAt(tour, s, pos), stops, m, vehicle, cfg) {
					continue
				}
				bestDelta = delta
				bestStop = s
				bestPos = pos
				if expired {
					break scan
				}
			}
		}

		if bestStop < 0 {
			return nil, fmt.Errorf(
				"solve route: no feasible insertion for %d remaining stop(s): %w",
				len(remaining), domain.ErrInfeasible,
			)
		}

		tour = insertAt(tour, bestStop, bestPos)
		remaining = removeValue(remaining, bestStop)
	}

	return tour, nil
}

// improveTour runs first-improvement local search until no move helps, the
// context is cancelled, or the deadline passes. The returned tour is always
// feasible and never worse than the input.
func improveTour(ctx context.Context, tour []int, stops []Stop, m CostMatrix, vehicle *domain.Vehicle, cfg config.Planner, deadline time.Time) []int {
	improved := true
	for improved {
		if ctx.Err() != nil || !time.Now().Before(deadline) {
			break
		}
		improved = false
		base := tourTime(tour, m)

		if next, ok := relocateMove(tour, stops, m, vehicle, cfg, base, deadline); ok {
			tour = next
			improved = true
			continue
		}
		if next, ok := swapMove(tour, stops, m, vehicle, cfg, base, deadline); ok {
			tour = next
			improved = true
			continue
		}
		if next, ok := twoOptMove(tour, stops, m, vehicle, cfg, base, deadline); ok {
			tour = next
			improved = true
		}
	}
	return tour
}

func relocateMove(tour []int, stops []Stop, m CostMatrix, vehicle *domain.Vehicle, cfg config.Planner, base float64, deadline time.Time) ([]int, bool) {
	for i := 1; i < len(tour)-1; i++ {
		if !time.Now().Before(deadline) {
			return nil, false
		}
		for j := 1; j < len(tour)-1; j++ {
			if j == i {
				continue
			}
			cand := relocateAt(tour, i, j)
			if tourTime(cand, m) >= base-1e-9 {
				continue
			}
			if feasibleTour(cand, stops, m, vehicle, cfg) {
				return cand, true
			}
		}
	}
	return nil, false
}

func swapMove(tour []int, stops []Stop, m CostMatrix, vehicle *domain.Vehicle, cfg config.Planner, base float64, deadline time.Time) ([]int, bool) {
	for i := 1; i < len(tour)-1; i++ {
		if !time.Now().Before(deadline) {
			return nil, false
		}
		for k := i + 1; k < len(tour)-1; k++ {
			cand := append([]int(nil), tour...)
			cand[i], cand[k] = cand[k], cand[i]
			if tourTime(cand, m) >= base-1e-9 {
				continue
			}
			if feasibleTour(cand, stops, m, vehicle, cfg) {
				return cand, true
			}
		}
	}
	return nil, false
}

// twoOptMove reverses a tour segment when that shortens total travel time.
func twoOptMove(tour []int, stops []Stop, m CostMatrix, vehicle *domain.Vehicle, cfg config.Planner, base float64, deadline time.Time) ([]int, bool) {
	for i := 1; i < len(tour)-2; i++ {
		if !time.Now().Before(deadline) {
			return nil, false
		}
		for k := i + 1; k < len(tour)-1; k++ {
			cand := append([]int(nil), tour...)
			for a, b := i, k; a < b; a, b = a+1, b-1 {
				cand[a], cand[b] = cand[b], cand[a]
			}
			if tourTime(cand, m) >= base-1e-9 {
				continue
			}
			if feasibleTour(cand, stops, m, vehicle, cfg) {
				return cand, true
			}
		}
	}
	return nil, false
}

// feasibleTour simulates the tour clock from the fixed departure minute.
// Arriving before a window may wait up to the configured slack; arriving
// after it fails. Load is a running sum from the depot and must stay within
// capacity at every stop. Total elapsed time (waits included) must not
// exceed the duration ceiling.
func feasibleTour(tour []int, stops []Stop, m CostMatrix, vehicle *domain.Vehicle, cfg config.Planner) bool {
	start := float64(cfg.DepartureHour * 60)
	clock := start
	var weight, volume float64

	for k := 1; k < len(tour); k++ {
		prev, cur := tour[k-1], tour[k]
		clock += m.TimeMin[prev][cur]

		if cur == 0 {
			continue // return leg, no window or demand
		}

		win := stops[cur].Window
		if clock < float64(win.Start) {
			wait := float64(win.Start) - clock
			if wait > float64(cfg.WaitSlackMin) {
				return false
			}
			clock = float64(win.Start)
		}
		if clock > float64(win.End) {
			return false
		}

		weight += stops[cur].Weight
		volume += stops[cur].Volume
		if !vehicle.CanCarry(weight, volume) {
			return false
		}
	}

	return clock-start <= float64(cfg.RouteDurationCeilingMin)
}

// tourTime is the travel-only cost of a tour; waiting does not count toward
// the objective, only toward feasibility.
func tourTime(tour []int, m CostMatrix) float64 {
	var t float64
	for k := 1; k < len(tour); k++ {
		t += m.TimeMin[tour[k-1]][tour[k]]
	}
	return t
}

func tourTotals(tour []int, m CostMatrix) (distKm, timeMin float64) {
	for k := 1; k < len(tour); k++ {
		distKm += m.DistanceKm[tour[k-1]][tour[k]]
		timeMin += m.TimeMin[tour[k-1]][tour[k]]
	}
	return distKm, timeMin
}

func insertAt(tour []int, stop, pos int) []int {
	out := make([]int, 0, len(tour)+1)
	out = append(out, tour[:pos]...)
	out = append(out, stop)
	out = append(out, tour[pos:]...)
	return out
}

// relocateAt removes the element at i and reinserts it so that it lands at
// index j in the resulting tour.
func relocateAt(tour []int, i, j int) []int {
	out := make([]int, 0, len(tour))
	out = append(out, tour[:i]...)
	out = append(out, tour[i+1:]...)

	final := make([]int, 0, len(tour))
	final = append(final, out[:j]...)
	final = append(final, tour[i])
	final = append(final, out[j:]...)
	return final
}

func removeValue(values []int, v int) []int {
	out := values[:0]
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
