package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Customer struct {
	ID        string            `gorm:"primaryKey" json:"id"`
	Email     string            `gorm:"not null;uniqueIndex" json:"email"`
	FirstName string            `gorm:"not null" json:"first_name"`
	LastName  string            `json:"last_name,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Company   string            `json:"company,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}
