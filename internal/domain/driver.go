package domain

import "time"

// PaymentPreference selects how a driver's trip amounts are split.
type PaymentPreference string

const (
	PaymentPreferenceBatta  PaymentPreference = "BATTA"
	PaymentPreferenceSalary PaymentPreference = "SALARY"
	PaymentPreferenceBoth   PaymentPreference = "BOTH"
)

// Valid reports whether p is one of the known preferences.
func (p PaymentPreference) Valid() bool {
	switch p {
	case PaymentPreferenceBatta, PaymentPreferenceSalary, PaymentPreferenceBoth:
		return true
	}
	return false
}

// Driver represents a driver in the system.
// Name and VehicleNumber are fixed at creation; only the preference changes.
type Driver struct {
	ID                string
	Name              string
	VehicleNumber     string
	PaymentPreference PaymentPreference
	CreatedAt         time.Time
}
