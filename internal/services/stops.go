package services

import (
	"logistics-route-service/internal/config"
	"logistics-route-service/internal/domain"
)

// Stop is one node of the optimization problem: the depot (index 0, no
// order, zero demand) or a customer location tied to exactly one pending
// order. Demand and window are fixed before the search starts.
type Stop struct {
	Order    *domain.Order // nil for the depot
	Location domain.Location
	Weight   float64
	Volume   float64
	Window   Window
}

// BuildStops assembles solver input: the warehouse depot followed by one
// stop per order, each carrying its aggregate weight/volume demand and
// resolved time window.
func BuildStops(warehouse *domain.Warehouse, orders []*domain.Order, cfg config.Planner) []Stop {
	stops := make([]Stop, 0, len(orders)+1)
	stops = append(stops, Stop{Location: warehouse.Location})

	for _, o := range orders {
		stops = append(stops, Stop{
			Order:    o,
			Location: o.Customer.Location,
			Weight:   o.TotalWeight(),
			Volume:   o.TotalVolume(),
		})
	}

	windows := ResolveTimeWindows(stops, cfg)
	for i := range stops {
		stops[i].Window = windows[i]
	}

	return stops
}
