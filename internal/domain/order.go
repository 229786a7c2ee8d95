package domain

import "time"

// OrderStatus is the delivery lifecycle shared by orders and route stops.
// This service only ever writes processing -> shipped at commit time and
// out_for_delivery -> delivered at reconciliation time; the remaining
// transitions belong to external business logic.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderProcessing     OrderStatus = "processing"
	OrderPacked         OrderStatus = "packed"
	OrderShipped        OrderStatus = "shipped"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
	OrderReturned       OrderStatus = "returned"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled || s == OrderReturned
}

// One line of an order: a product quantity with its per-unit shipping
// characteristics denormalized from the product catalog.
type OrderItem struct {
	ProductSKU string
	Quantity   int
	UnitWeight float64 // kilograms
	UnitVolume float64 // cubic meters
}

// Order is owned by the external order system. This service reads its
// demand (weight/volume) and advances its status as routes progress.
type Order struct {
	ID                   int64
	Number               string
	WarehouseID          int64
	Customer             *Customer
	Status               OrderStatus
	ExpectedDeliveryDate time.Time
	ActualDeliveryDate   *time.Time
	Items                []OrderItem
}

// TotalWeight returns the summed item weight demand in kilograms.
func (o *Order) TotalWeight() float64 {
	var w float64
	for _, it := range o.Items {
		w += float64(it.Quantity) * it.UnitWeight
	}
	return w
}

// TotalVolume returns the summed item volume demand in cubic meters.
func (o *Order) TotalVolume() float64 {
	var v float64
	for _, it := range o.Items {
		v += float64(it.Quantity) * it.UnitVolume
	}
	return v
}
