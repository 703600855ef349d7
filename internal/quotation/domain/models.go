package domain

import (
	"time"

	customerdomain "github.com/smallbiznis/quotehub/internal/customer/domain"
	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	userdomain "github.com/smallbiznis/quotehub/internal/user/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quotation is the sales proposal aggregate. The sale_persion naming is
// misspelled on purpose: it is part of the wire contract consumed by the
// existing clients and must not be corrected.
type Quotation struct {
	ID             string                   `gorm:"primaryKey" json:"id"`
	SalePersionID  string                   `gorm:"column:sale_persion_id;index" json:"sale_persion_id"`
	SalePersion    *userdomain.User         `gorm:"foreignKey:SalePersionID" json:"sale_persion,omitempty"`
	CustomerID     string                   `gorm:"index" json:"customer_id"`
	Customer       *customerdomain.Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	RegionID       string                   `gorm:"index" json:"region_id"`
	Region         *regiondomain.Region     `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	Title          string                   `gorm:"not null" json:"title"`
	Code           string                   `gorm:"not null;index" json:"code"`
	Date           *time.Time               `gorm:"type:date" json:"date,omitempty"`
	QuotationLines []QuotationLine          `gorm:"foreignKey:QuotationID" json:"quotation_lines,omitempty"`

	Heading          string `gorm:"type:text" json:"heading,omitempty"`
	Condition        string `gorm:"type:text" json:"condition,omitempty"`
	PaymentTerm      string `gorm:"type:text" json:"payment_term,omitempty"`
	DeliveryLeadTime string `gorm:"type:text" json:"delivery_lead_time,omitempty"`
	Warranty         string `gorm:"type:text" json:"warranty,omitempty"`
	InstallSupport   string `gorm:"type:text" json:"install_support,omitempty"`
	AppendixA        string `gorm:"type:text" json:"appendix_a,omitempty"`
	AppendixB        string `gorm:"type:text" json:"appendix_b,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (Quotation) TableName() string {
	return "quotations"
}

// QuotationLine is one priced product entry. Lines exist only inside a
// quotation; child lines reference their parent through ParentLineID and
// carry the owning quotation id as well so cascade soft deletes stay a
// single UPDATE.
type QuotationLine struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	QuotationID  string          `gorm:"not null;index" json:"quotation_id"`
	ParentLineID *string         `gorm:"index" json:"parent_line_id,omitempty"`
	ProductID    string          `gorm:"not null" json:"product_id"`
	Volume       int             `gorm:"not null" json:"volume"`
	UnitPrice    int64           `gorm:"not null" json:"unit_price"`
	Game         string          `gorm:"type:text" json:"game,omitempty"`
	ChildProduct []QuotationLine `gorm:"foreignKey:ParentLineID" json:"child_product,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuotationLine) TableName() string {
	return "quotation_lines"
}

// DefaultRelations is the relation set hydrated by the read routes.
var DefaultRelations = []string{
	"customer",
	"sale_persion",
	"region",
	"quotation_lines",
	"quotation_lines.child_product",
}
