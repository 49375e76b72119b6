package models

import "time"

type ServiceCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Service struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	CategoryID *uint            `json:"category_id"`
	Category   *ServiceCategory `gorm:"constraint:OnDelete:SET NULL;" json:"category,omitempty"`

	Name              string  `gorm:"size:100;not null" json:"name"`
	Description       string  `gorm:"type:text" json:"description"`
	PricingModel      string  `gorm:"size:20;default:'fixed';not null" json:"pricing_model"`
	BasePrice         float64 `gorm:"not null" json:"base_price"`
	UnitLabel         string  `gorm:"size:50" json:"unit_label"`
	EstimatedDuration int     `json:"estimated_duration"`
	RequiresMaterials bool    `json:"requires_materials"`
	IsActive          bool    `gorm:"default:true;not null" json:"is_active"`
	ImageURL          string  `gorm:"size:255" json:"image_url"`

	AddOns           []ServiceAddOn        `gorm:"constraint:OnDelete:CASCADE;" json:"add_ons,omitempty"`
	Availability     []ServiceAvailability `gorm:"constraint:OnDelete:CASCADE;" json:"availability,omitempty"`
	AreaPricingRules []AreaPricingRule     `gorm:"constraint:OnDelete:CASCADE;" json:"area_pricing_rules,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceAddOn struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ServiceID   uint    `gorm:"index;not null" json:"service_id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	IsActive    bool    `gorm:"default:true;not null" json:"is_active"`
}

// ServiceAvailability is a weekly window; DayOfWeek 0 is Monday.
type ServiceAvailability struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ServiceID uint   `gorm:"uniqueIndex:idx_service_day;not null" json:"service_id"`
	DayOfWeek int    `gorm:"uniqueIndex:idx_service_day;not null" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
}

type AreaPricingRule struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	ServiceID    uint     `gorm:"index;not null" json:"service_id"`
	MinArea      *float64 `json:"min_area"`
	MaxArea      *float64 `json:"max_area"`
	PricePerUnit float64  `gorm:"not null" json:"price_per_unit"`
	BaseFee      float64  `gorm:"default:0" json:"base_fee"`
}
