package pricing

import (
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Quote is the display price of one catalog product at a point in time.
type Quote struct {
	ProductID      string     `json:"product_id"`
	BasePrice      int64      `json:"base_price"`
	EffectivePrice int64      `json:"effective_price"`
	MRP            *int64     `json:"mrp,omitempty"`
	MRPDiscountPct int        `json:"mrp_discount_percent"`
	OfferID        string     `json:"offer_id,omitempty"`
	OfferTitle     string     `json:"offer_title,omitempty"`
	OfferType      string     `json:"offer_type,omitempty"`
	OfferValue     float64    `json:"offer_value,omitempty"`
	MaxQtyPerOrder *int       `json:"max_qty_per_order,omitempty"`
	OfferEndsAt    *time.Time `json:"offer_ends_at,omitempty"`
}

func QuoteProduct(p *model.Product, offers []model.Offer, now time.Time) Quote {
	price, offer := EffectivePrice(p, offers, now)
	q := Quote{
		ProductID:      p.ID,
		BasePrice:      p.Price,
		EffectivePrice: price,
		MRP:            p.MRP,
		MRPDiscountPct: MRPDiscountPercent(p.Price, p.MRP),
	}
	if offer != nil {
		end := offer.EndDate
		q.OfferID = offer.ID
		q.OfferTitle = offer.Title
		q.OfferType = string(offer.DiscountType)
		q.OfferValue = offer.DiscountValue
		q.MaxQtyPerOrder = offer.MaxQtyPerOrder
		q.OfferEndsAt = &end
	}
	return q
}
