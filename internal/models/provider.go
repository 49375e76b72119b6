package models

import "time"

type Provider struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Bio                    string   `gorm:"size:500" json:"bio"`
	Rating                 float64  `gorm:"default:5" json:"rating"`
	IsAvailable            bool     `gorm:"default:true;not null" json:"is_available"`
	ServiceRadius          *float64 `json:"service_radius"`
	ServiceAreaDescription string   `gorm:"size:255" json:"service_area_description"`

	VerificationStatus      string     `gorm:"size:20;default:'pending';not null;index" json:"verification_status"`
	VerificationDocumentURL string     `gorm:"size:255" json:"verification_document_url"`
	VerificationNotes       string     `gorm:"size:500" json:"verification_notes"`
	VerifiedAt              *time.Time `json:"verified_at"`

	Services []ProviderService `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProviderService links a provider to a catalog service it offers.
type ProviderService struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"uniqueIndex:idx_provider_service;not null" json:"provider_id"`
	ServiceID  uint `gorm:"uniqueIndex:idx_provider_service;not null" json:"service_id"`

	Service *Service `gorm:"constraint:OnDelete:CASCADE;" json:"service,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
