package domain

import (
	"time"

	"gorm.io/gorm"
)

// ProductPrice is the region-scoped price book entry. Amounts are stored
// in the currency's smallest unit.
type ProductPrice struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	ProductID string         `gorm:"not null;index:idx_product_region" json:"product_id"`
	RegionID  string         `gorm:"not null;index:idx_product_region" json:"region_id"`
	Price     int64          `gorm:"not null" json:"price"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProductPrice) TableName() string {
	return "product_prices"
}
