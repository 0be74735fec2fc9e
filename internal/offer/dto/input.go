package dto

import "time"

type OfferInput struct {
	Title          string     `json:"title" validate:"notblank"`
	Description    string     `json:"description"`
	DiscountType   string     `json:"discount_type" validate:"oneof=percentage fixed"`
	DiscountValue  float64    `json:"discount_value" validate:"gte=0"`
	StartDate      *time.Time `json:"start_date" validate:"required"`
	EndDate        *time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	ProductIDs     []string   `json:"product_ids"`
	MaxQtyPerOrder *int       `json:"max_qty_per_order" validate:"omitempty,gt=0"`
	IsActive       *bool      `json:"is_active"` // defaults to true
}
