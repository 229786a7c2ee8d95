package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/platform/obs"
	"logistics-route-service/internal/ports"
)

// Tracker advances persisted delivery state as estimated arrivals elapse.
// It only ever writes out_for_delivery -> delivered on stops and
// in_progress -> completed on routes; every other transition belongs to
// external business logic.
type Tracker struct {
	Routes ports.RouteRepository
}

// ReconcileDeliveries runs one reconciliation pass at the given time.
//
// Every out_for_delivery stop whose estimated arrival is at or before now
// becomes delivered (actual arrival stamped, order mirrored); a route whose
// stops are then all delivered becomes completed. The pass is idempotent
// and a failure on one stop or route is logged and skipped, never aborting
// the rest of the batch. Returns the number of stops delivered.
func (t *Tracker) ReconcileDeliveries(ctx context.Context, now time.Time) (_ int, err error) {
	defer obs.Time(ctx, "reconcile_deliveries")(&err)

	routes, err := t.Routes.ListInProgress(ctx)
	if err != nil {
		return 0, fmt.Errorf("reconcile deliveries: list routes: %w", err)
	}

	delivered := 0
	for _, route := range routes {
		stops, err := t.Routes.ListStops(ctx, route.ID)
		if err != nil {
			log.Printf("op=reconcile route=%s err=%v", route.RouteID, err)
			continue
		}

		allDelivered := len(stops) > 0
		for _, stop := range stops {
			if stop.DeliveryStatus == domain.OrderOutForDelivery && !stop.EstimatedArrival.After(now) {
				if err := t.Routes.MarkStopDelivered(ctx, stop.ID, now); err != nil {
					log.Printf("op=reconcile route=%s stop=%d err=%v", route.RouteID, stop.Sequence, err)
					allDelivered = false
					continue
				}
				stop.DeliveryStatus = domain.OrderDelivered
				delivered++
			}
			if stop.DeliveryStatus != domain.OrderDelivered {
				allDelivered = false
			}
		}

		if !allDelivered {
			continue
		}

		var actualMin *float64
		if route.StartTime != nil {
			mins := now.Sub(*route.StartTime).Minutes()
			actualMin = &mins
		}
		if err := t.Routes.CompleteRoute(ctx, route.ID, now, actualMin); err != nil {
			log.Printf("op=reconcile route=%s complete err=%v", route.RouteID, err)
			continue
		}
		log.Printf("op=reconcile route=%s completed", route.RouteID)
	}

	return delivered, nil
}
