package dto

import (
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type BookingListDTO struct {
	ID          uint      `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	ServiceName string    `json:"service_name"`
	City        string    `json:"city"`
	CustomerID  uint      `json:"customer_id"`
	ProviderID  *uint     `json:"provider_id"`
	TotalCost   float64   `json:"total_cost"`
}

func ToBookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		item := BookingListDTO{
			ID:          b.ID,
			ScheduledAt: b.ScheduledAt,
			Status:      b.Status,
			City:        b.City,
			CustomerID:  b.CustomerID,
			ProviderID:  b.ProviderID,
			TotalCost:   b.TotalCost,
		}
		if b.Service != nil {
			item.ServiceName = b.Service.Name
		}
		out = append(out, item)
	}
	return out
}
