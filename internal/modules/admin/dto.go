package admin

type DashboardStats struct {
	TotalVehicles         int64   `json:"total_vehicles"`
	AvailableVehicles     int64   `json:"available_vehicles"`
	TotalUsers            int64   `json:"total_users"`
	PendingReservations   int64   `json:"pending_reservations"`
	ConfirmedReservations int64   `json:"confirmed_reservations"`
	TotalRevenue          float64 `json:"total_revenue"`
}
