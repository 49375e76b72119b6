package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username  string  `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string  `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Phone     *string `gorm:"size:20;uniqueIndex" json:"phone"`
	Firstname string  `gorm:"size:50" json:"firstname"`
	Lastname  string  `gorm:"size:50" json:"lastname"`
	Gender    string  `gorm:"size:10" json:"gender"`
	Address   string  `gorm:"size:200" json:"address"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'customer';not null" json:"role"`
	IsActive     bool   `gorm:"default:true;not null" json:"is_active"`
	IsVerified   bool   `gorm:"default:false;not null" json:"is_verified"`

	LastLoginAt       *time.Time `json:"last_login_at"`
	PasswordChangedAt *time.Time `json:"-"`
	TokenVersion      uint       `gorm:"default:0;not null" json:"-"`

	EmailVerificationToken *string    `gorm:"size:64;index" json:"-"`
	EmailVerifiedAt        *time.Time `json:"email_verified_at"`

	PasswordResetToken      *string    `gorm:"size:64;index" json:"-"`
	PasswordResetExpiration *time.Time `json:"-"`

	Provider *Provider `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"provider,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
