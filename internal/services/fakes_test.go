package services

import (
	"context"
	"fmt"
	"time"

	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/ports"
)

// In-memory repository fakes shared by the service tests.

type fakeWarehouseRepo struct {
	warehouses map[int64]*domain.Warehouse
}

var _ ports.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (f *fakeWarehouseRepo) GetByID(_ context.Context, id int64) (*domain.Warehouse, error) {
	w, ok := f.warehouses[id]
	if !ok {
		return nil, fmt.Errorf("warehouse %d not found", id)
	}
	return w, nil
}

func (f *fakeWarehouseRepo) ListWithPendingOrders(_ context.Context, _ time.Time) ([]*domain.Warehouse, error) {
	out := make([]*domain.Warehouse, 0, len(f.warehouses))
	for _, w := range f.warehouses {
		out = append(out, w)
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders []*domain.Order
}

var _ ports.OrderRepository = (*fakeOrderRepo)(nil)

func (f *fakeOrderRepo) ListPendingForRoute(_ context.Context, _ int64, _ time.Time) ([]*domain.Order, error) {
	return f.orders, nil
}

type fakeFleetRepo struct {
	vehicle *domain.Vehicle
	driver  *domain.Driver
}

var _ ports.FleetRepository = (*fakeFleetRepo)(nil)

func (f *fakeFleetRepo) FirstAvailableVehicle(_ context.Context, _ int64, _ domain.VehicleType) (*domain.Vehicle, error) {
	if f.vehicle == nil {
		return nil, domain.ErrNoVehicleAvailable
	}
	return f.vehicle, nil
}

func (f *fakeFleetRepo) FirstAvailableDriver(_ context.Context, _ int64, _ domain.VehicleType) (*domain.Driver, error) {
	if f.driver == nil {
		return nil, domain.ErrNoDriverAvailable
	}
	return f.driver, nil
}

type fakeRouteRepo struct {
	routes     []*domain.DeliveryRoute
	stops      map[int64][]*domain.RouteStop
	createErr  error
	nextID     int64
	nextStopID int64
}

var _ ports.RouteRepository = (*fakeRouteRepo)(nil)

func newFakeRouteRepo() *fakeRouteRepo {
	return &fakeRouteRepo{stops: map[int64][]*domain.RouteStop{}}
}

func (f *fakeRouteRepo) CreateWithStops(_ context.Context, route *domain.DeliveryRoute, stops []*domain.RouteStop) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	route.ID = f.nextID
	f.routes = append(f.routes, route)
	for _, s := range stops {
		f.nextStopID++
		s.ID = f.nextStopID
		s.RouteID = route.ID
	}
	f.stops[route.ID] = stops
	return nil
}

func (f *fakeRouteRepo) GetByRouteID(_ context.Context, routeID string) (*domain.DeliveryRoute, error) {
	for _, r := range f.routes {
		if r.RouteID == routeID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("route %s not found", routeID)
}

func (f *fakeRouteRepo) ListByDate(_ context.Context, date time.Time) ([]*domain.DeliveryRoute, error) {
	out := []*domain.DeliveryRoute{}
	for _, r := range f.routes {
		if r.PlannedDate.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRouteRepo) ListInProgress(_ context.Context) ([]*domain.DeliveryRoute, error) {
	out := []*domain.DeliveryRoute{}
	for _, r := range f.routes {
		if r.Status == domain.RouteInProgress {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRouteRepo) ListStops(_ context.Context, routeID int64) ([]*domain.RouteStop, error) {
	return f.stops[routeID], nil
}

func (f *fakeRouteRepo) MarkStopDelivered(_ context.Context, stopID int64, at time.Time) error {
	for _, stops := range f.stops {
		for _, s := range stops {
			if s.ID != stopID {
				continue
			}
			if s.DeliveryStatus != domain.OrderOutForDelivery {
				return nil
			}
			s.DeliveryStatus = domain.OrderDelivered
			arrived := at
			s.ActualArrival = &arrived
			return nil
		}
	}
	return fmt.Errorf("stop %d not found", stopID)
}

func (f *fakeRouteRepo) CompleteRoute(_ context.Context, routeID int64, at time.Time, actualDurationMin *float64) error {
	for _, r := range f.routes {
		if r.ID != routeID {
			continue
		}
		if r.Status != domain.RouteInProgress {
			return nil
		}
		r.Status = domain.RouteCompleted
		end := at
		r.EndTime = &end
		r.ActualDurationMin = actualDurationMin
		return nil
	}
	return fmt.Errorf("route %d not found", routeID)
}

// Shared fixtures. Coordinates cluster around central Moscow so travel legs
// stay in the single-digit-kilometer range.

func testWarehouse() *domain.Warehouse {
	return &domain.Warehouse{
		ID:       1,
		Code:     "WH-MSK-01",
		Name:     "Moscow Central",
		Location: domain.Location{Lat: 55.7558, Lon: 37.6173},
	}
}

func testVehicle(weight, volume float64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:             7,
		Registration:   "A123BC",
		Type:           domain.VehicleVan,
		CapacityWeight: weight,
		CapacityVolume: volume,
		WarehouseID:    1,
		Status:         domain.VehicleAvailable,
	}
}

func testDriver() *domain.Driver {
	return &domain.Driver{
		ID:           3,
		Name:         "Test Driver",
		VehicleTypes: "van,truck",
		HomeBaseID:   1,
		Status:       domain.DriverAvailable,
	}
}

func testOrder(id int64, lat, lon, weight, volume float64, pref string) *domain.Order {
	return &domain.Order{
		ID:          id,
		Number:      fmt.Sprintf("ORD-%03d", id),
		WarehouseID: 1,
		Customer: &domain.Customer{
			ID:              id,
			Name:            fmt.Sprintf("Customer %d", id),
			Location:        domain.Location{Lat: lat, Lon: lon},
			PreferredWindow: pref,
		},
		Status: domain.OrderPacked,
		Items: []domain.OrderItem{
			{ProductSKU: "SKU-1", Quantity: 1, UnitWeight: weight, UnitVolume: volume},
		},
	}
}
