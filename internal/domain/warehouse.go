package domain

// Warehouse is the depot a route starts and ends at. Owned by the external
// inventory system; this service only reads it.
type Warehouse struct {
	ID       int64
	Code     string
	Name     string
	Address  string
	Location Location
}
