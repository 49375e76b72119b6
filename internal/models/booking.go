package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint  `gorm:"index;not null" json:"customer_id"`
	Customer   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer,omitempty"`

	ProviderID *uint     `gorm:"index" json:"provider_id"`
	Provider   *Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"provider,omitempty"`

	ServiceID uint     `gorm:"index;not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	Status      string    `gorm:"size:20;default:'pending';not null;index" json:"status"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`

	StreetAddress string   `gorm:"size:255;not null" json:"street_address"`
	City          string   `gorm:"size:100;not null" json:"city"`
	State         string   `gorm:"size:100" json:"state"`
	ZipCode       string   `gorm:"size:20" json:"zip_code"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`

	Notes         string   `gorm:"type:text" json:"notes"`
	DurationHours *float64 `json:"duration_hours"`
	Area          *float64 `json:"area"`
	TotalCost     float64  `gorm:"not null" json:"total_cost"`

	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	CancellationFee    *float64   `json:"cancellation_fee"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	ReminderSentAt     *time.Time `json:"-"`

	AddOns []BookingAddOn `gorm:"constraint:OnDelete:CASCADE;" json:"add_ons,omitempty"`

	Payment *Payment `gorm:"constraint:OnDelete:CASCADE;" json:"payment,omitempty"`
	Review  *Review  `gorm:"constraint:OnDelete:CASCADE;" json:"review,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingAddOn snapshots the add-on price charged at booking time.
type BookingAddOn struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	BookingID uint    `gorm:"index;not null" json:"booking_id"`
	AddOnID   uint    `gorm:"not null" json:"add_on_id"`
	Name      string  `gorm:"size:100" json:"name"`
	Price     float64 `json:"price"`
}
