package domain

// Customer is a delivery destination. PreferredWindow, when set, holds a
// "HH:MM-HH:MM" delivery window preference; empty means no preference.
type Customer struct {
	ID              int64
	Name            string
	Address         string
	Location        Location
	PreferredWindow string
}
