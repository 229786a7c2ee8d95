package domain

import "time"

type RouteStatus string

const (
	RoutePlanned    RouteStatus = "planned"
	RouteInProgress RouteStatus = "in_progress"
	RouteCompleted  RouteStatus = "completed"
	RouteCancelled  RouteStatus = "cancelled"
)

// DeliveryRoute is the persisted result of one optimization run: a single
// vehicle tour for one warehouse and planned date. A route exclusively owns
// its RouteStop rows and is never reordered after creation; re-optimization
// produces a new route.
type DeliveryRoute struct {
	ID                   int64
	RouteID              string
	WarehouseID          int64
	VehicleID            *int64
	DriverID             *int64
	PlannedDate          time.Time
	StartTime            *time.Time
	EndTime              *time.Time
	Status               RouteStatus
	TotalDistanceKm      float64
	OptimalDistanceKm    float64
	EstimatedDurationMin float64
	ActualDurationMin    *float64
	PathEncoding         string
	Notes                string
}

// RouteStop ties one order to its position in a route. Sequence values
// within a route form a contiguous permutation of 0..N-1, strictly
// increasing in estimated arrival.
type RouteStop struct {
	ID               int64
	RouteID          int64
	OrderID          int64
	Sequence         int
	EstimatedArrival time.Time
	ActualArrival    *time.Time
	DeliveryStatus   OrderStatus
	ProofOfDelivery  string
}

// EfficiencyScore rates a finished route 0-100 from three weighted parts:
// time (50%), distance against the straight-line optimum recorded at commit
// time (30%) and stop completion (20%). Parts with missing inputs contribute
// zero, so an unfinished route scores low rather than erroring.
func (r *DeliveryRoute) EfficiencyScore(stops []*RouteStop) float64 {
	var score float64

	if r.ActualDurationMin != nil && *r.ActualDurationMin > 0 && r.EstimatedDurationMin > 0 {
		timeEff := r.EstimatedDurationMin / *r.ActualDurationMin * 100
		if timeEff > 100 {
			timeEff = 100
		}
		score += timeEff * 0.5
	}

	if r.OptimalDistanceKm > 0 && r.TotalDistanceKm > 0 {
		distEff := r.OptimalDistanceKm / r.TotalDistanceKm * 100
		if distEff > 100 {
			distEff = 100
		}
		score += distEff * 0.3
	}

	if len(stops) > 0 {
		delivered := 0
		for _, s := range stops {
			if s.DeliveryStatus == OrderDelivered {
				delivered++
			}
		}
		score += float64(delivered) / float64(len(stops)) * 100 * 0.2
	}

	return score
}
