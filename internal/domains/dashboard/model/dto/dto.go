package dto

type StatsResponse struct {
	TotalBookings int   `json:"total_bookings"`
	OccupancyRate int   `json:"occupancy_rate"`
	ActiveGuests  int   `json:"active_guests"`
	Revenue       int64 `json:"revenue"`
}
