package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Region struct {
	ID           string            `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"not null" json:"name"`
	CurrencyCode string            `gorm:"not null" json:"currency_code"`
	TaxRate      float64           `gorm:"not null;default:0" json:"tax_rate"`
	Metadata     datatypes.JSONMap `gorm:"not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (Region) TableName() string {
	return "regions"
}
