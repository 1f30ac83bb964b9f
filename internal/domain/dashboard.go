package domain

// RecentTripsLimit is the number of trips shown on the dashboard.
const RecentTripsLimit = 5

// DashboardStats summarises drivers, trips and settlement totals.
type DashboardStats struct {
	TotalDrivers       int
	TotalTrips         int
	TotalPendingAmount float64
	TotalPaidAmount    float64
	RecentTrips        []*Trip
}
