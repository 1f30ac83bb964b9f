package handler

import (
	"time"

	"driverpay/internal/domain"
)

// Wire format: JSON fields are camelCase (driverId, pickupPoint, paidAt, ...).
// The store uses snake_case columns; this file is the only place the two meet
// the HTTP surface.

const timeFormat = time.RFC3339

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	VehicleNumber     string `json:"vehicleNumber"`
	PaymentPreference string `json:"paymentPreference"`
	CreatedAt         string `json:"createdAt,omitempty"`
}

// TripResponse is the HTTP response for trip data.
type TripResponse struct {
	ID           string  `json:"id"`
	DriverID     string  `json:"driverId"`
	DriverName   string  `json:"driverName"`
	PickupPoint  string  `json:"pickupPoint"`
	Destination  string  `json:"destination"`
	Route        string  `json:"route"`
	BattaAmount  float64 `json:"battaAmount"`
	SalaryAmount float64 `json:"salaryAmount"`
	TotalAmount  float64 `json:"totalAmount"`
	Date         string  `json:"date"`
}

// SettlementResponse is the HTTP response for settlement data.
type SettlementResponse struct {
	ID         string  `json:"id"`
	TripID     string  `json:"tripId"`
	DriverID   string  `json:"driverId"`
	DriverName string  `json:"driverName"`
	Amount     float64 `json:"amount"`
	Type       string  `json:"type"`
	Status     string  `json:"status"`
	Date       string  `json:"date"`
	PaidAt     string  `json:"paidAt,omitempty"`
}

// DashboardResponse is the HTTP response for the dashboard summary.
type DashboardResponse struct {
	TotalDrivers       int            `json:"totalDrivers"`
	TotalTrips         int            `json:"totalTrips"`
	TotalPendingAmount float64        `json:"totalPendingAmount"`
	TotalPaidAmount    float64        `json:"totalPaidAmount"`
	RecentTrips        []TripResponse `json:"recentTrips"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeFormat)
}

func toDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:                d.ID,
		Name:              d.Name,
		VehicleNumber:     d.VehicleNumber,
		PaymentPreference: string(d.PaymentPreference),
		CreatedAt:         formatTime(d.CreatedAt),
	}
}

func toTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:           t.ID,
		DriverID:     t.DriverID,
		DriverName:   t.DriverName,
		PickupPoint:  t.PickupPoint,
		Destination:  t.Destination,
		Route:        t.Route,
		BattaAmount:  t.BattaAmount,
		SalaryAmount: t.SalaryAmount,
		TotalAmount:  t.TotalAmount,
		Date:         formatTime(t.Date),
	}
}

func toSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		ID:         s.ID,
		TripID:     s.TripID,
		DriverID:   s.DriverID,
		DriverName: s.DriverName,
		Amount:     s.Amount,
		Type:       string(s.Type),
		Status:     string(s.Status),
		Date:       formatTime(s.Date),
		PaidAt:     formatTime(s.PaidAt),
	}
}

func toDriverResponses(drivers []*domain.Driver) []DriverResponse {
	out := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, toDriverResponse(d))
	}
	return out
}

func toTripResponses(trips []*domain.Trip) []TripResponse {
	out := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	return out
}

func toSettlementResponses(settlements []*domain.Settlement) []SettlementResponse {
	out := make([]SettlementResponse, 0, len(settlements))
	for _, s := range settlements {
		out = append(out, toSettlementResponse(s))
	}
	return out
}

func toDashboardResponse(stats *domain.DashboardStats) DashboardResponse {
	return DashboardResponse{
		TotalDrivers:       stats.TotalDrivers,
		TotalTrips:         stats.TotalTrips,
		TotalPendingAmount: stats.TotalPendingAmount,
		TotalPaidAmount:    stats.TotalPaidAmount,
		RecentTrips:        toTripResponses(stats.RecentTrips),
	}
}
