package dto

import "time"

type RouteStopResponse struct {
	OrderID          int64      `json:"order_id"`
	Sequence         int        `json:"sequence"`
	EstimatedArrival time.Time  `json:"estimated_arrival"`
	ActualArrival    *time.Time `json:"actual_arrival"`
	DeliveryStatus   string     `json:"delivery_status"`
}

type RouteResponse struct {
	RouteID              string              `json:"route_id"`
	WarehouseID          int64               `json:"warehouse_id"`
	VehicleID            *int64              `json:"vehicle_id"`
	DriverID             *int64              `json:"driver_id"`
	PlannedDate          string              `json:"planned_date"`
	Status               string              `json:"status"`
	TotalDistanceKm      float64             `json:"total_distance_km"`
	OptimalDistanceKm    float64             `json:"optimal_distance_km"`
	EstimatedDurationMin float64             `json:"estimated_duration_minutes"`
	ActualDurationMin    *float64            `json:"actual_duration_minutes"`
	PathEncoding         string              `json:"path_encoding"`
	EfficiencyScore      float64             `json:"efficiency_score"`
	Stops                []RouteStopResponse `json:"stops,omitempty"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}
