package domain

import "errors"

// Outcome taxonomy for optimization and commit. Callers branch on these with
// errors.Is; none of them indicates partial route/stop state.
var (
	// ErrNoWork means the order set was empty before solving started.
	// A legitimate empty result, not a failure.
	ErrNoWork = errors.New("no eligible orders")

	// ErrInfeasible means orders exist but no stop permutation satisfies
	// the time-window and capacity constraints.
	ErrInfeasible = errors.New("no feasible route")

	ErrNoVehicleAvailable = errors.New("no available vehicle")
	ErrNoDriverAvailable  = errors.New("no available driver")

	// ErrConcurrentModification means a vehicle or driver assumed available
	// during planning was claimed by a concurrent run before commit.
	ErrConcurrentModification = errors.New("vehicle or driver no longer available")
)
