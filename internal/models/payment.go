package models

import "time"

type Payment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"uniqueIndex;not null" json:"booking_id"`
	UserID    uint `gorm:"index;not null" json:"user_id"`

	Amount         float64 `gorm:"not null" json:"amount"`
	PaymentMethod  string  `gorm:"size:50" json:"payment_method"`
	Status         string  `gorm:"size:20;default:'pending';not null" json:"status"`
	TransactionRef *string `gorm:"size:100;uniqueIndex" json:"transaction_ref"`

	RefundAmount *float64 `json:"refund_amount"`
	RefundStatus string   `gorm:"size:20" json:"refund_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
