package model

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (d DiscountType) IsValid() bool {
	return d == DiscountPercentage || d == DiscountFixed
}

type Offer struct {
	BaseModel
	Title          string       `db:"title" json:"title"`
	Description    *string      `db:"description" json:"description"`
	DiscountType   DiscountType `db:"discount_type" json:"discount_type"`
	DiscountValue  float64      `db:"discount_value" json:"discount_value"`
	StartDate      time.Time    `db:"start_date" json:"start_date"`
	EndDate        time.Time    `db:"end_date" json:"end_date"`
	ProductIDs     StringList   `db:"product_ids" json:"product_ids"`
	MaxQtyPerOrder *int         `db:"max_qty_per_order" json:"max_qty_per_order"`
	IsActive       bool         `db:"is_active" json:"is_active"`
}

// IsLive reports whether the offer is active and now falls inside [StartDate, EndDate].
func (o *Offer) IsLive(now time.Time) bool {
	return o.IsActive && !now.Before(o.StartDate) && !now.After(o.EndDate)
}

func (o *Offer) AppliesTo(productID string) bool {
	return o.ProductIDs.Contains(productID)
}
