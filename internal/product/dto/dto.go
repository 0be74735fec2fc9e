package dto

import (
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
)

type ProductFilters struct {
	Category    string
	Brand       string
	Trending    bool
	IsActive    *bool
	SearchQuery string // name, brand or description
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

type CatalogItem struct {
	Product model.Product `json:"product"`
	Quote   pricing.Quote `json:"quote"`
}
