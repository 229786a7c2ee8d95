package dto

type OptimizeRequest struct {
	WarehouseID int64  `json:"warehouse_id"`
	Date        string `json:"date"` // YYYY-MM-DD, defaults to today
	VehicleType string `json:"vehicle_type"`
}

type OptimizeResponse struct {
	Result           string  `json:"result"` // "planned" or "no_work"
	RouteID          string  `json:"route_id,omitempty"`
	TotalDistanceKm  float64 `json:"total_distance_km,omitempty"`
	TotalTimeMinutes float64 `json:"total_time_minutes,omitempty"`
	Stops            int     `json:"stops,omitempty"`
}

type ReconcileResponse struct {
	DeliveredStops int `json:"delivered_stops"`
}
