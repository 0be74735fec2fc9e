package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func offer(id string, kind model.DiscountType, value float64, products ...string) model.Offer {
	return model.Offer{
		BaseModel:     model.BaseModel{ID: id},
		Title:         "offer " + id,
		DiscountType:  kind,
		DiscountValue: value,
		StartDate:     day(2024, 1, 1),
		EndDate:       day(2024, 1, 31),
		ProductIDs:    model.StringList(products),
		IsActive:      true,
	}
}

func TestResolveBestOffer_Exclusions(t *testing.T) {
	now := day(2024, 1, 15)

	inactive := offer("o1", model.DiscountPercentage, 10, "p1")
	inactive.IsActive = false

	notStarted := offer("o2", model.DiscountPercentage, 10, "p1")
	notStarted.StartDate = day(2024, 1, 20)

	ended := offer("o3", model.DiscountPercentage, 10, "p1")
	ended.EndDate = day(2024, 1, 10)

	otherProduct := offer("o4", model.DiscountPercentage, 10, "p2")

	tests := []struct {
		name   string
		offers []model.Offer
	}{
		{"no offers", nil},
		{"inactive", []model.Offer{inactive}},
		{"window not started", []model.Offer{notStarted}},
		{"window ended", []model.Offer{ended}},
		{"product not listed", []model.Offer{otherProduct}},
		{"all excluded", []model.Offer{inactive, notStarted, ended, otherProduct}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ResolveBestOffer("p1", tt.offers, now))
		})
	}
}

func TestResolveBestOffer_WindowAfterEnd(t *testing.T) {
	o := offer("jan", model.DiscountPercentage, 15, "p1")
	assert.Nil(t, ResolveBestOffer("p1", []model.Offer{o}, day(2024, 2, 1)))
}

func TestResolveBestOffer_WindowBoundsInclusive(t *testing.T) {
	o := offer("o1", model.DiscountFixed, 5, "p1")
	offers := []model.Offer{o}

	require.NotNil(t, ResolveBestOffer("p1", offers, o.StartDate))
	require.NotNil(t, ResolveBestOffer("p1", offers, o.EndDate))
	assert.Nil(t, ResolveBestOffer("p1", offers, o.EndDate.Add(time.Nanosecond)))
	assert.Nil(t, ResolveBestOffer("p1", offers, o.StartDate.Add(-time.Nanosecond)))
}

func TestResolveBestOffer_PicksLargestRawValue(t *testing.T) {
	now := day(2024, 1, 15)
	offers := []model.Offer{
		offer("small", model.DiscountPercentage, 5, "p1"),
		offer("large", model.DiscountPercentage, 25, "p1"),
		offer("medium", model.DiscountFixed, 10, "p1"),
	}

	best := ResolveBestOffer("p1", offers, now)
	require.NotNil(t, best)
	assert.Equal(t, "large", best.ID)
}

// Percentage and fixed values are compared as raw numbers. A 40-unit fixed offer beats a
// 30% offer even on a price where 30% would be the deeper cut.
func TestResolveBestOffer_CrossKindComparesRawValues(t *testing.T) {
	now := day(2024, 1, 15)
	offers := []model.Offer{
		offer("pct", model.DiscountPercentage, 30, "p1"),
		offer("fixed", model.DiscountFixed, 40, "p1"),
	}

	best := ResolveBestOffer("p1", offers, now)
	require.NotNil(t, best)
	assert.Equal(t, "fixed", best.ID)
	assert.Equal(t, int64(960), ApplyDiscount(1000, best))
}

func TestResolveBestOffer_TieKeepsFirst(t *testing.T) {
	now := day(2024, 1, 15)
	offers := []model.Offer{
		offer("first", model.DiscountPercentage, 50, "p1"),
		offer("second", model.DiscountFixed, 50, "p1"),
	}

	best := ResolveBestOffer("p1", offers, now)
	require.NotNil(t, best)
	assert.Equal(t, "first", best.ID)

	offers[0], offers[1] = offers[1], offers[0]
	best = ResolveBestOffer("p1", offers, now)
	require.NotNil(t, best)
	assert.Equal(t, "second", best.ID)
}

func TestResolveBestOffer_IgnoresMalformedOffers(t *testing.T) {
	now := day(2024, 1, 15)
	bogus := offer("bogus", model.DiscountType("bogo"), 99, "p1")
	negative := offer("negative", model.DiscountFixed, -10, "p1")
	infinite := offer("infinite", model.DiscountFixed, math.Inf(1), "p1")
	nan := offer("nan", model.DiscountPercentage, math.NaN(), "p1")
	good := offer("good", model.DiscountFixed, 3, "p1")

	best := ResolveBestOffer("p1", []model.Offer{bogus, negative, infinite, nan, good}, now)
	require.NotNil(t, best)
	assert.Equal(t, "good", best.ID)

	assert.Nil(t, ResolveBestOffer("p1", []model.Offer{bogus, negative, infinite, nan}, now))
}

func TestQuoteProduct_NonFiniteOfferKeepsBasePrice(t *testing.T) {
	now := day(2024, 1, 15)
	p := &model.Product{BaseModel: model.BaseModel{ID: "p1"}, Price: 100}
	offers := []model.Offer{
		offer("inf", model.DiscountFixed, math.Inf(1), "p1"),
		offer("neg-inf", model.DiscountPercentage, math.Inf(-1), "p1"),
	}

	var q Quote
	require.NotPanics(t, func() { q = QuoteProduct(p, offers, now) })
	assert.Equal(t, int64(100), q.EffectivePrice)
	assert.Empty(t, q.OfferID)

	assert.NotPanics(t, func() {
		assert.Equal(t, int64(100), ApplyDiscount(100, &offers[0]))
	})
}

func TestResolveBestOffer_ReturnsCopy(t *testing.T) {
	now := day(2024, 1, 15)
	offers := []model.Offer{offer("o1", model.DiscountFixed, 3, "p1")}

	best := ResolveBestOffer("p1", offers, now)
	require.NotNil(t, best)
	best.DiscountValue = 100
	assert.Equal(t, float64(3), offers[0].DiscountValue)
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name  string
		base  int64
		kind  model.DiscountType
		value float64
		want  int64
	}{
		{"percentage 20 of 100", 100, model.DiscountPercentage, 20, 80},
		{"fixed 20 of 100", 100, model.DiscountFixed, 20, 80},
		{"fixed floors at zero", 10, model.DiscountFixed, 20, 0},
		{"percentage rounds half up", 25, model.DiscountPercentage, 10, 23},
		{"percentage rounds down", 99, model.DiscountPercentage, 33, 66},
		{"zero percent", 250, model.DiscountPercentage, 0, 250},
		{"hundred percent", 250, model.DiscountPercentage, 100, 0},
		{"over hundred percent floors at zero", 250, model.DiscountPercentage, 150, 0},
		{"fractional fixed rounds", 100, model.DiscountFixed, 20.5, 80},
		{"fixed equal to price", 40, model.DiscountFixed, 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &model.Offer{DiscountType: tt.kind, DiscountValue: tt.value}
			assert.Equal(t, tt.want, ApplyDiscount(tt.base, o))
		})
	}
}

func TestApplyDiscount_NoOffer(t *testing.T) {
	assert.Equal(t, int64(120), ApplyDiscount(120, nil))
	assert.Equal(t, int64(120), ApplyDiscount(120, &model.Offer{DiscountType: "mystery", DiscountValue: 50}))
}

func TestMRPDiscountPercent(t *testing.T) {
	mrp := func(v int64) *int64 { return &v }

	assert.Equal(t, 0, MRPDiscountPercent(100, nil))
	assert.Equal(t, 0, MRPDiscountPercent(100, mrp(100)))
	assert.Equal(t, 0, MRPDiscountPercent(100, mrp(90)))
	assert.Equal(t, 20, MRPDiscountPercent(80, mrp(100)))
	assert.Equal(t, 33, MRPDiscountPercent(200, mrp(300)))
	assert.Equal(t, 67, MRPDiscountPercent(100, mrp(300)))
}

func TestQuoteProduct(t *testing.T) {
	now := day(2024, 1, 15)
	mrp := int64(500)
	p := &model.Product{BaseModel: model.BaseModel{ID: "p1"}, Price: 400, MRP: &mrp}

	q := QuoteProduct(p, []model.Offer{offer("o1", model.DiscountPercentage, 10, "p1")}, now)
	assert.Equal(t, int64(400), q.BasePrice)
	assert.Equal(t, int64(360), q.EffectivePrice)
	assert.Equal(t, 20, q.MRPDiscountPct)
	assert.Equal(t, "o1", q.OfferID)
	require.NotNil(t, q.OfferEndsAt)

	plain := QuoteProduct(p, nil, now)
	assert.Equal(t, int64(400), plain.EffectivePrice)
	assert.Empty(t, plain.OfferID)
	assert.Nil(t, plain.OfferEndsAt)
}
