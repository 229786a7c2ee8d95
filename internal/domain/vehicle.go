package domain

import "strings"

type VehicleType string

const (
	VehicleTruck VehicleType = "truck"
	VehicleVan   VehicleType = "van"
	VehicleBike  VehicleType = "bike"
)

type VehicleStatus string

const (
	VehicleAvailable    VehicleStatus = "available"
	VehicleInTransit    VehicleStatus = "in_transit"
	VehicleMaintenance  VehicleStatus = "maintenance"
	VehicleOutOfService VehicleStatus = "out_of_service"
)

// Vehicle is a fleet unit stationed at a warehouse. Capacities bound the
// running weight/volume sums of any route it is assigned to.
type Vehicle struct {
	ID             int64
	Registration   string
	Type           VehicleType
	CapacityWeight float64 // kilograms
	CapacityVolume float64 // cubic meters
	WarehouseID    int64
	Status         VehicleStatus
}

// CanCarry reports whether a total demand fits within vehicle capacity.
func (v *Vehicle) CanCarry(weight, volume float64) bool {
	return weight <= v.CapacityWeight && volume <= v.CapacityVolume
}

type DriverStatus string

const (
	DriverAvailable  DriverStatus = "available"
	DriverOnDelivery DriverStatus = "on_delivery"
	DriverOnLeave    DriverStatus = "on_leave"
)

// Driver holds a comma-separated list of vehicle types the driver is
// certified for, mirroring the fleet system's record layout.
type Driver struct {
	ID            int64
	Name          string
	LicenseNumber string
	VehicleTypes  string
	HomeBaseID    int64
	Status        DriverStatus
}

// CertifiedFor reports whether the driver may operate the given vehicle type.
func (d *Driver) CertifiedFor(t VehicleType) bool {
	for _, vt := range strings.Split(d.VehicleTypes, ",") {
		if strings.TrimSpace(vt) == string(t) {
			return true
		}
	}
	return false
}
