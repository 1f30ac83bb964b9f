package domain

import "time"

// SettlementType identifies which payment component a settlement covers.
type SettlementType string

const (
	SettlementTypeBatta  SettlementType = "BATTA"  // paid weekly
	SettlementTypeSalary SettlementType = "SALARY" // paid monthly
)

// Valid reports whether t is a known settlement type.
func (t SettlementType) Valid() bool {
	return t == SettlementTypeBatta || t == SettlementTypeSalary
}

// SettlementStatus represents the current status of a settlement.
type SettlementStatus string

const (
	SettlementStatusPending SettlementStatus = "PENDING"
	SettlementStatusPaid    SettlementStatus = "PAID"
)

// Valid reports whether s is a known settlement status.
func (s SettlementStatus) Valid() bool {
	return s == SettlementStatusPending || s == SettlementStatusPaid
}

// Settlement is an amount owed to a driver for one component of a trip.
// Status only moves PENDING -> PAID and Amount never changes.
type Settlement struct {
	ID         string
	TripID     string
	DriverID   string
	DriverName string
	Amount     float64
	Type       SettlementType
	Status     SettlementStatus
	Date       time.Time
	PaidAt     time.Time // zero until paid
}

// IsPaid reports whether the settlement has been paid.
func (s *Settlement) IsPaid() bool {
	return s.Status == SettlementStatusPaid
}

// SettlementFilter restricts a settlement listing. Empty fields match everything.
type SettlementFilter struct {
	Type   SettlementType
	Status SettlementStatus
}

// Matches reports whether s passes every non-empty field of the filter.
func (f SettlementFilter) Matches(s *Settlement) bool {
	if f.Type != "" && s.Type != f.Type {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	return true
}
