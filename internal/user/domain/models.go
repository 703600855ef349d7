package domain

import (
	"time"

	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSaleman Role = "saleman"
)

type User struct {
	ID           string                `gorm:"primaryKey" json:"id"`
	Role         Role                  `gorm:"not null;default:'saleman'" json:"role"`
	Email        string                `gorm:"not null;index" json:"email"`
	Name         string                `gorm:"not null" json:"name"`
	Phone        string                `json:"phone,omitempty"`
	PasswordHash string                `gorm:"column:password_hash" json:"-"`
	APIToken     string                `gorm:"column:api_token" json:"api_token,omitempty"`
	Regions      []regiondomain.Region `gorm:"many2many:user_region;" json:"regions,omitempty"`
	Metadata     datatypes.JSONMap     `gorm:"not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt    time.Time             `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time             `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt        `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}
