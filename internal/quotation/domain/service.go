package domain

import (
	"context"
	"errors"
	"time"
)

type CreateQuotationLineChildInput struct {
	ProductID string `json:"product_id"`
	Volume    int    `json:"volume"`
	Game      string `json:"game,omitempty"`
}

type CreateQuotationLineInput struct {
	ProductID    string                          `json:"product_id"`
	Volume       int                             `json:"volume"`
	Game         string                          `json:"game,omitempty"`
	ChildProduct []CreateQuotationLineChildInput `json:"child_product,omitempty"`
}

type CreateQuotationRequest struct {
	SalePersionID    string                     `json:"sale_persion_id"`
	CustomerID       string                     `json:"customer_id"`
	RegionID         string                     `json:"region_id"`
	Code             string                     `json:"code"`
	Title            string                     `json:"title"`
	Date             *time.Time                 `json:"date,omitempty"`
	Heading          string                     `json:"heading,omitempty"`
	Condition        string                     `json:"condition,omitempty"`
	PaymentTerm      string                     `json:"payment_term,omitempty"`
	DeliveryLeadTime string                     `json:"delivery_lead_time,omitempty"`
	Warranty         string                     `json:"warranty,omitempty"`
	InstallSupport   string                     `json:"install_support,omitempty"`
	AppendixA        string                     `json:"appendix_a,omitempty"`
	AppendixB        string                     `json:"appendix_b,omitempty"`
	QuotationLines   []CreateQuotationLineInput `json:"quotation_lines"`
	Metadata         map[string]any             `json:"metadata,omitempty"`
}

// FindConfig carries the caller-facing read shape: which relations to
// hydrate, which columns to select, and the page window.
type FindConfig struct {
	Relations []string
	Fields    []string
	Offset    int
	Limit     int
	Order     string
}

type ListQuotationResponse struct {
	Quotations []Quotation `json:"quotations"`
	Count      int64       `json:"count"`
	Offset     int         `json:"offset"`
	Limit      int         `json:"limit"`
}

type Service interface {
	Create(ctx context.Context, req CreateQuotationRequest) (Quotation, error)
	Retrieve(ctx context.Context, id string, config FindConfig) (Quotation, error)
	List(ctx context.Context, filter Filter, config FindConfig) ([]Quotation, error)
	ListAndCount(ctx context.Context, filter Filter, config FindConfig, regionID string) ([]Quotation, int64, error)
	// Delete is idempotent: a missing id is a no-op.
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound    = errors.New("not_found")
	ErrInvalidData = errors.New("invalid_data")
	ErrDuplicate   = errors.New("duplicate")
)
