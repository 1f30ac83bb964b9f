package domain

import "time"

// Trip represents a logged trip and the amounts owed for it.
// Trips are immutable once created.
type Trip struct {
	ID           string
	DriverID     string
	DriverName   string // snapshot taken when the trip was logged
	PickupPoint  string
	Destination  string
	Route        string
	BattaAmount  float64
	SalaryAmount float64
	TotalAmount  float64
	Date         time.Time
}

// BuildRoute returns the display route for a pickup/destination pair.
func BuildRoute(pickupPoint, destination string) string {
	return pickupPoint + " -> " + destination
}
