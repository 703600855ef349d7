package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID          string            `gorm:"primaryKey" json:"id"`
	Title       string            `gorm:"not null" json:"title"`
	Brand       string            `gorm:"index" json:"brand,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductAdditionalHardware links a product to hardware commonly bundled
// with it; surfaced as child-product suggestions during quotation
// composition.
type ProductAdditionalHardware struct {
	ID                 string         `gorm:"primaryKey" json:"id"`
	ProductParentID    string         `gorm:"not null;index" json:"product_parent_id"`
	ProductAdditionsID string         `gorm:"not null" json:"product_additions_id"`
	ProductAdditions   *Product       `gorm:"foreignKey:ProductAdditionsID" json:"product_additions,omitempty"`
	CreatedAt          time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProductAdditionalHardware) TableName() string {
	return "product_additional_hardware"
}
