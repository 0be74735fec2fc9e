// Package pricing resolves promotional offers into effective unit prices.
//
// Everything here is a pure function of its inputs and safe for concurrent use.
package pricing

import (
	"math"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ResolveBestOffer returns the live offer covering productID with the greatest raw
// discount value, or nil. Percentage and fixed values are compared as plain numbers,
// so a 50% offer and a 50-unit offer tie. On ties the earliest offer in input order wins.
// Offers with an unknown discount type or a negative, infinite or NaN value are ignored.
func ResolveBestOffer(productID string, offers []model.Offer, now time.Time) *model.Offer {
	var best *model.Offer
	for i := range offers {
		o := &offers[i]
		if !o.IsLive(now) || !o.AppliesTo(productID) || !usable(o) {
			continue
		}
		if best == nil || o.DiscountValue > best.DiscountValue {
			best = o
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// ApplyDiscount returns basePrice after offer, rounded half-up to a whole currency unit
// and never below zero. A nil or unusable offer leaves the price unchanged.
func ApplyDiscount(basePrice int64, offer *model.Offer) int64 {
	if offer == nil || !usable(offer) {
		return basePrice
	}

	base := decimal.NewFromInt(basePrice)
	value := decimal.NewFromFloat(offer.DiscountValue)

	var price decimal.Decimal
	switch offer.DiscountType {
	case model.DiscountPercentage:
		price = base.Mul(decimal.NewFromInt(1).Sub(value.Div(hundred)))
	case model.DiscountFixed:
		price = base.Sub(value)
	}

	if price.IsNegative() {
		return 0
	}
	return price.Round(0).IntPart()
}

// EffectivePrice resolves the best offer for p and applies it.
func EffectivePrice(p *model.Product, offers []model.Offer, now time.Time) (int64, *model.Offer) {
	offer := ResolveBestOffer(p.ID, offers, now)
	return ApplyDiscount(p.Price, offer), offer
}

// MRPDiscountPercent is the "% OFF" badge: round((mrp-price)/mrp*100) when mrp exceeds price, else 0.
func MRPDiscountPercent(price int64, mrp *int64) int {
	if mrp == nil {
		return 0
	}
	return PercentOff(price, *mrp)
}

// PercentOff is round((reference - price) / reference * 100), or 0 when price is not below reference.
func PercentOff(price, reference int64) int {
	if reference <= 0 || reference <= price {
		return 0
	}
	r := decimal.NewFromInt(reference)
	pct := r.Sub(decimal.NewFromInt(price)).Div(r).Mul(hundred)
	return int(pct.Round(0).IntPart())
}

func usable(o *model.Offer) bool {
	v := o.DiscountValue
	return o.DiscountType.IsValid() && v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
