package models

import "time"

type Review struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BookingID  uint `gorm:"uniqueIndex;not null" json:"booking_id"`
	UserID     uint `gorm:"index;not null" json:"user_id"`
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	Rating          int        `gorm:"not null" json:"rating"`
	Comment         string     `gorm:"type:text" json:"comment"`
	IsApproved      bool       `gorm:"default:false;not null" json:"is_approved"`
	ModerationNotes string     `gorm:"size:255" json:"moderation_notes"`
	ProviderReply   string     `gorm:"type:text" json:"provider_reply"`
	ProviderReplyAt *time.Time `json:"provider_reply_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
