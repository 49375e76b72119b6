package dto

type AdminStatsDTO struct {
	TotalUsers           int64            `json:"total_users"`
	TotalProviders       int64            `json:"total_providers"`
	PendingVerifications int64            `json:"pending_verifications"`
	TotalBookings        int64            `json:"total_bookings"`
	BookingsByStatus     map[string]int64 `json:"bookings_by_status"`
	ActiveServices       int64            `json:"active_services"`
}
